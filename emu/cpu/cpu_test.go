package cpu

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/beanboi7/chyp8/emu/opcode"
	"github.com/matryer/is"
)

// load places words at StartAddr on a fresh machine.
func load(t *testing.T, words ...uint16) *EMU {
	t.Helper()
	emu := NewEMU(WithRand(rand.New(rand.NewSource(1))))
	rom := make([]byte, 0, 2*len(words))
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	if err := emu.LoadROM(rom); err != nil {
		t.Fatal(err)
	}
	return emu
}

// run ticks the machine n times and fails on any error.
func run(t *testing.T, emu *EMU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := emu.Tick(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func TestNewEMU(t *testing.T) {
	is := is.New(t)
	emu := NewEMU()
	is.Equal(emu.PC(), uint16(StartAddr))
	is.Equal(emu.memory[:len(FontSet)], FontSet[:])
	is.Equal(emu.V, [NumRegisters]uint8{})
	is.Equal(emu.sp, uint16(0))
	is.Equal(emu.Framebuffer(), [Width * Height]bool{})
}

func TestMachinesAreIndependent(t *testing.T) {
	is := is.New(t)
	a := load(t, 0x6105)
	b := load(t, 0x6109)
	run(t, a, 1)
	run(t, b, 1)
	is.Equal(a.V[1], uint8(5))
	is.Equal(b.V[1], uint8(9))
}

func TestAddValWraps(t *testing.T) {
	for x := uint16(0); x < NumRegisters; x++ {
		is := is.New(t)
		emu := load(t, 0x6000|x<<8|0xFF, 0x7000|x<<8|0x02)
		emu.V[flag] = 7
		if x == flag {
			emu.V[flag] = 0
		}
		run(t, emu, 2)
		is.Equal(emu.V[x], uint8(1))
		if x != flag {
			is.Equal(emu.V[flag], uint8(7)) // AddVal leaves VF alone
		}
	}
}

func TestAddReg(t *testing.T) {
	tests := []struct {
		vx, vy   uint8
		want, vf uint8
	}{
		{250, 10, 4, 1},
		{1, 1, 2, 0},
		{255, 1, 0, 1},
		{128, 127, 255, 0},
	}
	for _, tt := range tests {
		is := is.New(t)
		emu := load(t, 0x8124)
		emu.V[1], emu.V[2] = tt.vx, tt.vy
		run(t, emu, 1)
		is.Equal(emu.V[1], tt.want)
		is.Equal(emu.V[flag], tt.vf)
	}
}

func TestSubReg(t *testing.T) {
	tests := []struct {
		vx, vy   uint8
		want, vf uint8
	}{
		{5, 3, 2, 1},
		{3, 5, 254, 0},
		{7, 7, 0, 1},
	}
	for _, tt := range tests {
		is := is.New(t)
		emu := load(t, 0x8125)
		emu.V[1], emu.V[2] = tt.vx, tt.vy
		run(t, emu, 1)
		is.Equal(emu.V[1], tt.want)
		is.Equal(emu.V[flag], tt.vf)
	}
}

func TestSubFromReg(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x8127, 0x8347)
	emu.V[1], emu.V[2] = 3, 5
	emu.V[3], emu.V[4] = 5, 3
	run(t, emu, 1)
	is.Equal(emu.V[1], uint8(2))
	is.Equal(emu.V[flag], uint8(1))
	run(t, emu, 1)
	is.Equal(emu.V[3], uint8(254))
	is.Equal(emu.V[flag], uint8(0))
}

func TestShifts(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x8106, 0x820E, 0x830E)
	emu.V[1] = 0b00000011
	emu.V[2] = 0b10000001
	emu.V[3] = 0b01000000

	run(t, emu, 1)
	is.Equal(emu.V[1], uint8(0b00000001))
	is.Equal(emu.V[flag], uint8(1))

	run(t, emu, 1)
	is.Equal(emu.V[2], uint8(0b00000010))
	is.Equal(emu.V[flag], uint8(1))

	run(t, emu, 1)
	is.Equal(emu.V[3], uint8(0b10000000))
	is.Equal(emu.V[flag], uint8(0))
}

func TestBitwise(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x8121, 0x8342, 0x8563, 0x8780)
	emu.V[1], emu.V[2] = 0xF0, 0x0F
	emu.V[3], emu.V[4] = 0xFC, 0x3F
	emu.V[5], emu.V[6] = 0xFF, 0x0F
	emu.V[8] = 0x42
	run(t, emu, 4)
	is.Equal(emu.V[1], uint8(0xFF))
	is.Equal(emu.V[3], uint8(0x3C))
	is.Equal(emu.V[5], uint8(0xF0))
	is.Equal(emu.V[7], uint8(0x42))
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		skip bool
	}{
		{"SE val taken", 0x3105, true},
		{"SE val not taken", 0x3106, false},
		{"SNE val taken", 0x4106, true},
		{"SNE val not taken", 0x4105, false},
		{"SE reg taken", 0x5120, true},
		{"SE reg not taken", 0x5130, false},
		{"SNE reg taken", 0x9130, true},
		{"SNE reg not taken", 0x9120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			emu := load(t, tt.word)
			emu.V[1], emu.V[2], emu.V[3] = 5, 5, 6
			run(t, emu, 1)
			want := uint16(StartAddr + 2)
			if tt.skip {
				want += 2
			}
			is.Equal(emu.PC(), want)
		})
	}
}

func TestJumps(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x1300)
	run(t, emu, 1)
	is.Equal(emu.PC(), uint16(0x300))

	emu = load(t, 0xB300)
	emu.V[0] = 0x10
	run(t, emu, 1)
	is.Equal(emu.PC(), uint16(0x310))
}

func TestCallReturn(t *testing.T) {
	is := is.New(t)
	// 200: CALL 206; 202: LD V1, 1; 204: NOP; 206: RET
	emu := load(t, 0x2206, 0x6101, 0x0000, 0x00EE)
	run(t, emu, 1)
	is.Equal(emu.PC(), uint16(0x206))
	is.Equal(emu.sp, uint16(1))
	run(t, emu, 1)
	is.Equal(emu.PC(), uint16(0x202))
	is.Equal(emu.sp, uint16(0))
}

func TestStackOverflow(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x2200) // calls itself forever
	run(t, emu, StackSize)
	is.Equal(emu.sp, uint16(StackSize))

	err := emu.Tick()
	is.True(errors.Is(err, ErrStackOverflow))
}

func TestStackUnderflow(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x00EE)
	err := emu.Tick()
	is.True(errors.Is(err, ErrStackUnderflow))
	is.Equal(emu.PC(), uint16(StartAddr+2)) // past the failing RET
}

func TestInvalidOpcodeIsFatal(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xFFFF)
	err := emu.Tick()
	var de *opcode.DecodeError
	is.True(errors.As(err, &de))
	is.Equal(de.Word, uint16(0xFFFF))
	is.Equal(emu.PC(), uint16(StartAddr+2)) // past the undecodable word
}

func TestFetchOutOfRange(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x1FFF)
	run(t, emu, 1)
	is.Equal(emu.PC(), uint16(0xFFF))
	err := emu.Tick()
	is.True(errors.Is(err, ErrAddressOutOfRange))
	is.Equal(emu.PC(), uint16(0xFFF)) // pc is not advanced by a failed fetch

	emu = load(t, 0x1FFE)
	run(t, emu, 1)
	is.NoErr(emu.Tick()) // 0xFFE is the last fetchable address; memory is zero so NOP
}

func TestClearScreen(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0x00E0)
	for i := range emu.display {
		emu.display[i] = i%3 == 0
	}
	run(t, emu, 1)
	is.Equal(emu.Framebuffer(), [Width * Height]bool{})
	is.True(emu.ShouldDraw())
	is.True(!emu.ShouldDraw()) // reset after read
}

func TestSetIndexAndIncrement(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xAFFF, 0xF11E)
	emu.V[1] = 0x10
	run(t, emu, 2)
	is.Equal(emu.I, uint16(0x100F))

	emu = load(t, 0xF11E)
	emu.I = 0xFFFF
	emu.V[1] = 2
	run(t, emu, 1)
	is.Equal(emu.I, uint16(1)) // 16 bit wrap
}

func TestRand(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 50; i++ {
		emu := load(t, 0xC10F, 0xC200)
		emu.rand = rand.New(rand.NewSource(int64(i)))
		run(t, emu, 2)
		is.Equal(emu.V[1]&0xF0, uint8(0))
		is.Equal(emu.V[2], uint8(0))
	}

	a, b := load(t, 0xC1FF), load(t, 0xC1FF)
	run(t, a, 1)
	run(t, b, 1)
	is.Equal(a.V[1], b.V[1]) // same seed, same value
}

func TestTimersFromProgram(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xF115, 0xF218, 0xF307)
	emu.V[1], emu.V[2] = 9, 4
	run(t, emu, 2)
	is.Equal(emu.delayTimer, uint8(9))
	is.Equal(emu.soundTimer, uint8(4))

	emu.TickTimers()
	run(t, emu, 1)
	is.Equal(emu.V[3], uint8(8))
	is.Equal(emu.soundTimer, uint8(3))
}

func TestLoadFontChar(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xF129)
	emu.V[1] = 0xA
	run(t, emu, 1)
	is.Equal(emu.I, uint16(50))
	is.Equal(emu.memory[emu.I:emu.I+glyphSize], FontSet[50:55])
}

func TestBCD(t *testing.T) {
	tests := []struct {
		v    uint8
		want []byte
	}{
		{0, []byte{0, 0, 0}},
		{9, []byte{0, 0, 9}},
		{137, []byte{1, 3, 7}},
		{255, []byte{2, 5, 5}},
	}
	for _, tt := range tests {
		is := is.New(t)
		emu := load(t, 0xA300, 0xF133)
		emu.V[1] = tt.v
		run(t, emu, 2)
		is.Equal(emu.memory[0x300:0x303], tt.want)
	}
}

func TestBCDOutOfRange(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xAFFE, 0xF133)
	run(t, emu, 1)
	is.True(errors.Is(emu.Tick(), ErrAddressOutOfRange))
}

func TestLoadIntoAndFromRam(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xA300, 0xF355, 0xA400, 0xF265)
	for i := range emu.V {
		emu.V[i] = uint8(i + 1)
	}
	emu.memory[0x400], emu.memory[0x401], emu.memory[0x402], emu.memory[0x403] = 0xAA, 0xBB, 0xCC, 0xDD

	run(t, emu, 2)
	is.Equal(emu.memory[0x300:0x305], []byte{1, 2, 3, 4, 0}) // V0..V3 inclusive

	run(t, emu, 2)
	is.Equal(emu.V[0], uint8(0xAA))
	is.Equal(emu.V[1], uint8(0xBB))
	is.Equal(emu.V[2], uint8(0xCC))
	is.Equal(emu.V[3], uint8(4))   // untouched
	is.Equal(emu.I, uint16(0x400)) // I is not incremented
}

func TestLoadIntoRamOutOfRange(t *testing.T) {
	is := is.New(t)
	emu := load(t, 0xAFFF, 0xF155)
	run(t, emu, 1)
	is.True(errors.Is(emu.Tick(), ErrAddressOutOfRange))
}
