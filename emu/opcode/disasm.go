package opcode

import "fmt"

// Line is one word of a ROM listing.
type Line struct {
	Addr  uint16
	Word  uint16
	Valid bool
	Op    Opcode
}

func (l Line) String() string {
	if !l.Valid {
		return fmt.Sprintf("%03X  %04X  DW %#04x", l.Addr, l.Word, l.Word)
	}
	return fmt.Sprintf("%03X  %04X  %s", l.Addr, l.Word, l.Op)
}

// Disassemble decodes rom word by word as if loaded at base.
// Data words and a trailing odd byte are kept as invalid lines.
func Disassemble(rom []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(rom)+1)/2)
	for i := 0; i < len(rom); i += 2 {
		word := uint16(rom[i]) << 8
		if i+1 < len(rom) {
			word |= uint16(rom[i+1])
		}
		line := Line{Addr: base + uint16(i), Word: word}
		if i+1 < len(rom) {
			op, err := Decode(word)
			line.Op, line.Valid = op, err == nil
		}
		lines = append(lines, line)
	}
	return lines
}
