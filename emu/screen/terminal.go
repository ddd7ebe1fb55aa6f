package screen

import (
	"strings"

	"github.com/beanboi7/chyp8/emu/cpu"

	tm "github.com/buger/goterm"
)

// Terminal draws the framebuffer to the terminal with half block characters,
// two pixel rows per line. It has no keyboard input.
type Terminal struct{}

func (t *Terminal) Draw(fb [cpu.Width * cpu.Height]bool) {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Print(Render(fb))
	tm.Flush()
}

func (t *Terminal) Update() {}

// Closed is always false; a headless run ends on its cycle limit or an interrupt.
func (t *Terminal) Closed() bool { return false }

// Render returns fb as text framed by a border.
func Render(fb [cpu.Width * cpu.Height]bool) string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", cpu.Width) + "+\n"
	sb.WriteString(border)
	for y := 0; y < cpu.Height; y += 2 {
		sb.WriteByte('|')
		for x := 0; x < cpu.Width; x++ {
			top, bottom := fb[cpu.Width*y+x], fb[cpu.Width*(y+1)+x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
