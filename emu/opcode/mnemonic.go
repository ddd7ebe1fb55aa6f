package opcode

import "fmt"

var kindNames = [...]string{
	Nop:                 "Nop",
	ClearScreen:         "ClearScreen",
	Return:              "Return",
	Jump:                "Jump",
	Call:                "Call",
	SkipIfValEQ:         "SkipIfValEQ",
	SkipIfValNE:         "SkipIfValNE",
	SkipIfRegEQ:         "SkipIfRegEQ",
	SetToVal:            "SetToVal",
	AddVal:              "AddVal",
	SetToReg:            "SetToReg",
	BitwiseOr:           "BitwiseOr",
	BitwiseAnd:          "BitwiseAnd",
	BitwiseXor:          "BitwiseXor",
	AddReg:              "AddReg",
	SubReg:              "SubReg",
	ShiftRight:          "ShiftRight",
	SubFromReg:          "SubFromReg",
	ShiftLeft:           "ShiftLeft",
	SkipIfRegNE:         "SkipIfRegNE",
	SetIndex:            "SetIndex",
	JumpV0Distance:      "JumpV0Distance",
	Rand:                "Rand",
	DrawSprite:          "DrawSprite",
	SkipIfKeyPressed:    "SkipIfKeyPressed",
	SkipIfKeyNotPressed: "SkipIfKeyNotPressed",
	GetDelayTimer:       "GetDelayTimer",
	WaitKey:             "WaitKey",
	SetDelayTimer:       "SetDelayTimer",
	SetSoundTimer:       "SetSoundTimer",
	IncrementI:          "IncrementI",
	LoadFontChar:        "LoadFontChar",
	BCD:                 "BCD",
	LoadIntoRam:         "LoadIntoRam",
	LoadFromRam:         "LoadFromRam",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// String returns the assembler mnemonic, e.g. "LD V1, 0x22".
func (o Opcode) String() string {
	switch o.Kind {
	case Nop:
		return "NOP"
	case ClearScreen:
		return "CLS"
	case Return:
		return "RET"
	case Jump:
		return fmt.Sprintf("JP %#03x", o.NNN)
	case Call:
		return fmt.Sprintf("CALL %#03x", o.NNN)
	case SkipIfValEQ:
		return fmt.Sprintf("SE V%X, %#02x", o.X, o.NN)
	case SkipIfValNE:
		return fmt.Sprintf("SNE V%X, %#02x", o.X, o.NN)
	case SkipIfRegEQ:
		return fmt.Sprintf("SE V%X, V%X", o.X, o.Y)
	case SetToVal:
		return fmt.Sprintf("LD V%X, %#02x", o.X, o.NN)
	case AddVal:
		return fmt.Sprintf("ADD V%X, %#02x", o.X, o.NN)
	case SetToReg:
		return fmt.Sprintf("LD V%X, V%X", o.X, o.Y)
	case BitwiseOr:
		return fmt.Sprintf("OR V%X, V%X", o.X, o.Y)
	case BitwiseAnd:
		return fmt.Sprintf("AND V%X, V%X", o.X, o.Y)
	case BitwiseXor:
		return fmt.Sprintf("XOR V%X, V%X", o.X, o.Y)
	case AddReg:
		return fmt.Sprintf("ADD V%X, V%X", o.X, o.Y)
	case SubReg:
		return fmt.Sprintf("SUB V%X, V%X", o.X, o.Y)
	case ShiftRight:
		return fmt.Sprintf("SHR V%X", o.X)
	case SubFromReg:
		return fmt.Sprintf("SUBN V%X, V%X", o.X, o.Y)
	case ShiftLeft:
		return fmt.Sprintf("SHL V%X", o.X)
	case SkipIfRegNE:
		return fmt.Sprintf("SNE V%X, V%X", o.X, o.Y)
	case SetIndex:
		return fmt.Sprintf("LD I, %#03x", o.NNN)
	case JumpV0Distance:
		return fmt.Sprintf("JP V0, %#03x", o.NNN)
	case Rand:
		return fmt.Sprintf("RND V%X, %#02x", o.X, o.NN)
	case DrawSprite:
		return fmt.Sprintf("DRW V%X, V%X, %d", o.X, o.Y, o.N)
	case SkipIfKeyPressed:
		return fmt.Sprintf("SKP V%X", o.X)
	case SkipIfKeyNotPressed:
		return fmt.Sprintf("SKNP V%X", o.X)
	case GetDelayTimer:
		return fmt.Sprintf("LD V%X, DT", o.X)
	case WaitKey:
		return fmt.Sprintf("LD V%X, K", o.X)
	case SetDelayTimer:
		return fmt.Sprintf("LD DT, V%X", o.X)
	case SetSoundTimer:
		return fmt.Sprintf("LD ST, V%X", o.X)
	case IncrementI:
		return fmt.Sprintf("ADD I, V%X", o.X)
	case LoadFontChar:
		return fmt.Sprintf("LD F, V%X", o.X)
	case BCD:
		return fmt.Sprintf("LD B, V%X", o.X)
	case LoadIntoRam:
		return fmt.Sprintf("LD [I], V%X", o.X)
	case LoadFromRam:
		return fmt.Sprintf("LD V%X, [I]", o.X)
	}
	return fmt.Sprintf("DW %#04x", o.Word)
}
