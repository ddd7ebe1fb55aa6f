package cpu

import (
	"fmt"

	"github.com/beanboi7/chyp8/emu/opcode"
	"github.com/sirupsen/logrus"
)

// Tick runs one fetch, decode, execute cycle. Any error is fatal for the running
// program. A failed fetch leaves pc unchanged; after a decode or execute error
// pc already points past the failing word.
func (emu *EMU) Tick() error {
	if int(emu.pc)+1 >= MemorySize {
		return fmt.Errorf("fetch at %#04x: %w", emu.pc, ErrAddressOutOfRange)
	}
	pc := emu.pc
	emu.opcode = uint16(emu.memory[pc])<<8 | uint16(emu.memory[pc+1])
	emu.pc += 2

	op, err := opcode.Decode(emu.opcode)
	if err != nil {
		return fmt.Errorf("decode at %#04x: %w", pc, err)
	}

	if emu.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		emu.log.WithFields(logrus.Fields{
			"pc":     fmt.Sprintf("%#04x", pc),
			"opcode": fmt.Sprintf("%#04x", emu.opcode),
		}).Trace(op)
	}

	if err := emu.execute(op); err != nil {
		return fmt.Errorf("%v at %#04x: %w", op, pc, err)
	}
	return nil
}

func (emu *EMU) execute(op opcode.Opcode) error {
	x, y := op.X, op.Y

	switch op.Kind {
	case opcode.Nop:
	case opcode.ClearScreen:
		emu.display = [Width * Height]bool{}
		emu.updateScreen = true
	case opcode.Return:
		addr, err := emu.pop()
		if err != nil {
			return err
		}
		emu.pc = addr
	case opcode.Jump:
		emu.pc = op.NNN
	case opcode.Call:
		if err := emu.push(emu.pc); err != nil {
			return err
		}
		emu.pc = op.NNN
	case opcode.SkipIfValEQ:
		emu.skipIf(emu.V[x] == op.NN)
	case opcode.SkipIfValNE:
		emu.skipIf(emu.V[x] != op.NN)
	case opcode.SkipIfRegEQ:
		emu.skipIf(emu.V[x] == emu.V[y])
	case opcode.SkipIfRegNE:
		emu.skipIf(emu.V[x] != emu.V[y])
	case opcode.SetToVal:
		emu.V[x] = op.NN
	case opcode.AddVal:
		emu.V[x] += op.NN
	case opcode.SetToReg:
		emu.V[x] = emu.V[y]
	case opcode.BitwiseOr:
		emu.V[x] |= emu.V[y]
	case opcode.BitwiseAnd:
		emu.V[x] &= emu.V[y]
	case opcode.BitwiseXor:
		emu.V[x] ^= emu.V[y]
	case opcode.AddReg:
		sum := uint16(emu.V[x]) + uint16(emu.V[y])
		emu.V[x] = uint8(sum)
		emu.V[flag] = boolToByte(sum > 0xFF)
	case opcode.SubReg:
		noBorrow := emu.V[x] >= emu.V[y]
		emu.V[x] -= emu.V[y]
		emu.V[flag] = boolToByte(noBorrow)
	case opcode.ShiftRight:
		dropped := emu.V[x] & 1
		emu.V[x] >>= 1
		emu.V[flag] = dropped
	case opcode.SubFromReg:
		noBorrow := emu.V[y] >= emu.V[x]
		emu.V[x] = emu.V[y] - emu.V[x]
		emu.V[flag] = boolToByte(noBorrow)
	case opcode.ShiftLeft:
		dropped := (emu.V[x] >> 7) & 1
		emu.V[x] <<= 1
		emu.V[flag] = dropped
	case opcode.SetIndex:
		emu.I = op.NNN
	case opcode.JumpV0Distance:
		emu.pc = uint16(emu.V[0]) + op.NNN
	case opcode.Rand:
		emu.V[x] = uint8(emu.rand.Intn(256)) & op.NN
	case opcode.DrawSprite:
		return emu.drawSprite(emu.V[x], emu.V[y], op.N)
	case opcode.SkipIfKeyPressed:
		emu.skipIf(emu.keyPressed(emu.V[x]))
	case opcode.SkipIfKeyNotPressed:
		emu.skipIf(!emu.keyPressed(emu.V[x]))
	case opcode.GetDelayTimer:
		emu.V[x] = emu.delayTimer
	case opcode.WaitKey:
		key, ok := emu.firstKey()
		if !ok {
			emu.pc -= 2
			return nil
		}
		emu.V[x] = key
	case opcode.SetDelayTimer:
		emu.delayTimer = emu.V[x]
	case opcode.SetSoundTimer:
		emu.soundTimer = emu.V[x]
	case opcode.IncrementI:
		emu.I += uint16(emu.V[x])
	case opcode.LoadFontChar:
		emu.I = FontStartAddr + uint16(emu.V[x])*glyphSize
	case opcode.BCD:
		if err := emu.checkRange(emu.I, 3); err != nil {
			return err
		}
		v := emu.V[x]
		emu.memory[emu.I] = v / 100
		emu.memory[emu.I+1] = (v / 10) % 10
		emu.memory[emu.I+2] = v % 10
	case opcode.LoadIntoRam:
		if err := emu.checkRange(emu.I, int(x)+1); err != nil {
			return err
		}
		copy(emu.memory[emu.I:], emu.V[:x+1])
	case opcode.LoadFromRam:
		if err := emu.checkRange(emu.I, int(x)+1); err != nil {
			return err
		}
		copy(emu.V[:x+1], emu.memory[emu.I:])
	default:
		return &opcode.DecodeError{Word: op.Word}
	}
	return nil
}

// drawSprite XORs an n-row sprite from memory[I] onto the screen at (vx, vy).
// Coordinates wrap around the screen edges. VF is set once for the whole sprite:
// 1 if any lit pixel was turned off.
func (emu *EMU) drawSprite(vx, vy, n uint8) error {
	if err := emu.checkRange(emu.I, int(n)); err != nil {
		return err
	}

	collision := false
	for row := 0; row < int(n); row++ {
		sprite := emu.memory[int(emu.I)+row]
		py := (int(vy) + row) % Height
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (int(vx) + col) % Width
			idx := Width*py + px
			if emu.display[idx] {
				collision = true
			}
			emu.display[idx] = !emu.display[idx]
		}
	}

	emu.V[flag] = boolToByte(collision)
	emu.updateScreen = true
	return nil
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

// checkRange fails if memory[addr:addr+n] runs past the end of memory.
func (emu *EMU) checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return fmt.Errorf("%d bytes at %#04x: %w", n, addr, ErrAddressOutOfRange)
	}
	return nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
