// Package opcode decodes CHIP-8 instruction words.
package opcode

import "fmt"

// Kind identifies one of the 35 CHIP-8 instructions.
type Kind uint8

const (
	Nop                 Kind = iota // 0000
	ClearScreen                     // 00E0
	Return                          // 00EE
	Jump                            // 1NNN
	Call                            // 2NNN
	SkipIfValEQ                     // 3XNN
	SkipIfValNE                     // 4XNN
	SkipIfRegEQ                     // 5XY0
	SetToVal                        // 6XNN
	AddVal                          // 7XNN
	SetToReg                        // 8XY0
	BitwiseOr                       // 8XY1
	BitwiseAnd                      // 8XY2
	BitwiseXor                      // 8XY3
	AddReg                          // 8XY4
	SubReg                          // 8XY5
	ShiftRight                      // 8XY6
	SubFromReg                      // 8XY7
	ShiftLeft                       // 8XYE
	SkipIfRegNE                     // 9XY0
	SetIndex                        // ANNN
	JumpV0Distance                  // BNNN
	Rand                            // CXNN
	DrawSprite                      // DXYN
	SkipIfKeyPressed                // EX9E
	SkipIfKeyNotPressed             // EXA1
	GetDelayTimer                   // FX07
	WaitKey                         // FX0A
	SetDelayTimer                   // FX15
	SetSoundTimer                   // FX18
	IncrementI                      // FX1E
	LoadFontChar                    // FX29
	BCD                             // FX33
	LoadIntoRam                     // FX55
	LoadFromRam                     // FX65
)

// Opcode is a decoded instruction. Only the operands meaningful for Kind are set.
type Opcode struct {
	Kind Kind
	Word uint16

	X   uint8  // register index from nibble 1
	Y   uint8  // register index from nibble 2
	N   uint8  // nibble 3, sprite height
	NN  uint8  // immediate byte
	NNN uint16 // 12 bit address
}

// DecodeError is returned for words outside the instruction table.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode: %#04x", e.Word)
}

// Decode maps a 16 bit instruction word to its Opcode.
func Decode(word uint16) (Opcode, error) {
	n0 := word >> 12
	x := uint8(word>>8) & 0xF
	y := uint8(word>>4) & 0xF
	n := uint8(word) & 0xF
	nn := uint8(word)
	nnn := word & 0x0FFF

	op := Opcode{Word: word}
	xy := func(k Kind) (Opcode, error) {
		op.Kind, op.X, op.Y = k, x, y
		return op, nil
	}
	xnn := func(k Kind) (Opcode, error) {
		op.Kind, op.X, op.NN = k, x, nn
		return op, nil
	}
	addr := func(k Kind) (Opcode, error) {
		op.Kind, op.NNN = k, nnn
		return op, nil
	}
	reg := func(k Kind) (Opcode, error) {
		op.Kind, op.X = k, x
		return op, nil
	}

	switch n0 {
	case 0x0:
		switch word {
		case 0x0000:
			op.Kind = Nop
			return op, nil
		case 0x00E0:
			op.Kind = ClearScreen
			return op, nil
		case 0x00EE:
			op.Kind = Return
			return op, nil
		}
	case 0x1:
		return addr(Jump)
	case 0x2:
		return addr(Call)
	case 0x3:
		return xnn(SkipIfValEQ)
	case 0x4:
		return xnn(SkipIfValNE)
	case 0x5:
		if n == 0 {
			return xy(SkipIfRegEQ)
		}
	case 0x6:
		return xnn(SetToVal)
	case 0x7:
		return xnn(AddVal)
	case 0x8:
		switch n {
		case 0x0:
			return xy(SetToReg)
		case 0x1:
			return xy(BitwiseOr)
		case 0x2:
			return xy(BitwiseAnd)
		case 0x3:
			return xy(BitwiseXor)
		case 0x4:
			return xy(AddReg)
		case 0x5:
			return xy(SubReg)
		case 0x6:
			return xy(ShiftRight)
		case 0x7:
			return xy(SubFromReg)
		case 0xE:
			return xy(ShiftLeft)
		}
	case 0x9:
		if n == 0 {
			return xy(SkipIfRegNE)
		}
	case 0xA:
		return addr(SetIndex)
	case 0xB:
		return addr(JumpV0Distance)
	case 0xC:
		return xnn(Rand)
	case 0xD:
		op.Kind, op.X, op.Y, op.N = DrawSprite, x, y, n
		return op, nil
	case 0xE:
		switch nn {
		case 0x9E:
			return reg(SkipIfKeyPressed)
		case 0xA1:
			return reg(SkipIfKeyNotPressed)
		}
	case 0xF:
		switch nn {
		case 0x07:
			return reg(GetDelayTimer)
		case 0x0A:
			return reg(WaitKey)
		case 0x15:
			return reg(SetDelayTimer)
		case 0x18:
			return reg(SetSoundTimer)
		case 0x1E:
			return reg(IncrementI)
		case 0x29:
			return reg(LoadFontChar)
		case 0x33:
			return reg(BCD)
		case 0x55:
			return reg(LoadIntoRam)
		case 0x65:
			return reg(LoadFromRam)
		}
	}

	return Opcode{Word: word}, &DecodeError{Word: word}
}
