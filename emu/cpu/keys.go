package cpu

// Keypress records the state of logical key index. Out of range indices are ignored.
// Safe to call from an input goroutine while the machine runs.
func (emu *EMU) Keypress(index int, pressed bool) {
	if index < 0 || index >= NumKeys {
		return
	}
	emu.keyMu.Lock()
	emu.keyState[index] = pressed
	emu.keyMu.Unlock()
}

func (emu *EMU) keyPressed(index uint8) bool {
	emu.keyMu.Lock()
	defer emu.keyMu.Unlock()
	return emu.keyState[index&0xF]
}

// firstKey returns the lowest pressed key.
func (emu *EMU) firstKey() (uint8, bool) {
	emu.keyMu.Lock()
	defer emu.keyMu.Unlock()
	for k, pressed := range emu.keyState {
		if pressed {
			return uint8(k), true
		}
	}
	return 0, false
}
