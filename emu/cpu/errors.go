package cpu

import "errors"

var (
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrStackOverflow     = errors.New("stack pointer overflow")
	ErrStackUnderflow    = errors.New("stack pointer underflow")
	ErrRomTooLarge       = errors.New("ROM too big")
)
