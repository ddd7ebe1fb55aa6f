package cpu

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	MemorySize    = 4096
	NumRegisters  = 16
	StackSize     = 16
	NumKeys       = 16
	Width         = 64
	Height        = 32
	FontStartAddr = 0x000
	StartAddr     = 0x200
	glyphSize     = 5
	flag          = 0xF //VF
)

type EMU struct {
	opcode     uint16
	memory     [MemorySize]uint8
	V          [NumRegisters]uint8
	I          uint16 //address register
	pc         uint16
	display    [Width * Height]bool
	delayTimer uint8 //counts down at 60Hz
	soundTimer uint8 //same as above
	stack      [StackSize]uint16
	sp         uint16

	keyMu    sync.Mutex
	keyState [NumKeys]bool //tells whether key is pressed or not

	updateScreen bool //to draw or not
	rand         *rand.Rand
	log          *logrus.Entry
}

// Option configures an EMU at construction.
type Option func(emu *EMU)

// WithRand sets the source used by the RND instruction.
func WithRand(r *rand.Rand) Option {
	return func(emu *EMU) {
		emu.rand = r
	}
}

// WithLogger sets the logger used for instruction tracing.
func WithLogger(log *logrus.Entry) Option {
	return func(emu *EMU) {
		emu.log = log
	}
}

var FontSet = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// NewEMU returns a zeroed machine with the font loaded and pc at StartAddr.
func NewEMU(opts ...Option) *EMU {
	emu := &EMU{
		pc: StartAddr,
	}
	for _, opt := range opts {
		opt(emu)
	}
	if emu.rand == nil {
		emu.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if emu.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		emu.log = logrus.NewEntry(l)
	}
	emu.loadFont()
	return emu
}

// PC returns the address of the next instruction.
func (emu *EMU) PC() uint16 {
	return emu.pc
}

// Opcode returns the last fetched instruction word.
func (emu *EMU) Opcode() uint16 {
	return emu.opcode
}

// Framebuffer returns a copy of the screen, row-major.
func (emu *EMU) Framebuffer() [Width * Height]bool {
	return emu.display
}

// Pixel reports whether the pixel at (x, y) is lit. Out of range is unlit.
func (emu *EMU) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return emu.display[Width*y+x]
}

// ShouldDraw reports whether the framebuffer changed since the last call.
func (emu *EMU) ShouldDraw() bool {
	draw := emu.updateScreen
	emu.updateScreen = false
	return draw
}
