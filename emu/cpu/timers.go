package cpu

// TickTimers ages the delay and sound timers by one step, normally at 60Hz.
// It returns true when the sound timer runs out, the host should beep then.
func (emu *EMU) TickTimers() (playTone bool) {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
	if emu.soundTimer > 0 {
		playTone = emu.soundTimer == 1
		emu.soundTimer--
	}
	return playTone
}
