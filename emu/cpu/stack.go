package cpu

func (emu *EMU) push(addr uint16) error {
	if int(emu.sp) >= StackSize {
		return ErrStackOverflow
	}
	emu.stack[emu.sp] = addr
	emu.sp++
	return nil
}

func (emu *EMU) pop() (uint16, error) {
	if emu.sp == 0 {
		return 0, ErrStackUnderflow
	}
	emu.sp--
	return emu.stack[emu.sp], nil
}
