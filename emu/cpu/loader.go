package cpu

import "fmt"

const maxRomSize = MemorySize - StartAddr

func (emu *EMU) loadFont() {
	copy(emu.memory[FontStartAddr:], FontSet[:])
}

// LoadROM copies rom into memory starting at StartAddr.
func (emu *EMU) LoadROM(rom []byte) error {
	if len(rom) > maxRomSize {
		return fmt.Errorf("%w: %d bytes, can't cross %d", ErrRomTooLarge, len(rom), maxRomSize)
	}

	copy(emu.memory[StartAddr:], rom)
	return nil
}
