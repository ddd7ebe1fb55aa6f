package screen

import (
	"github.com/beanboi7/chyp8/emu/cpu"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

type Window struct {
	*pixelgl.Window
	KeyMap map[uint16]pixelgl.Button
	scale  float64
	imd    *imdraw.IMDraw
}

// NewWindow opens a window scale times the CHIP-8 resolution.
// Must be called from the function passed to pixelgl.Run.
func NewWindow(scale float64) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "Chyp8",
		Bounds: pixel.R(0, 0, cpu.Width*scale, cpu.Height*scale),
		VSync:  true,
	}

	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Window{
		Window: win,
		KeyMap: DefaultKeyMap,
		scale:  scale,
		imd:    imdraw.New(nil),
	}, nil
}

// Draw rebuilds the picture shown by Update, lit pixels white on black.
func (w *Window) Draw(fb [cpu.Width * cpu.Height]bool) {
	w.imd.Clear()
	w.imd.Color = colornames.White
	for y := 0; y < cpu.Height; y++ {
		for x := 0; x < cpu.Width; x++ {
			if !fb[cpu.Width*y+x] {
				continue
			}
			r := pixelRect(x, y, w.scale)
			w.imd.Push(r.Min, r.Max)
			w.imd.Rectangle(0)
		}
	}
}

// Pressed reports whether the keyboard key mapped to CHIP-8 key is held.
func (w *Window) Pressed(key int) bool {
	b, ok := w.KeyMap[uint16(key)]
	return ok && w.Window.Pressed(b)
}

// Update paints the last drawn frame, swaps buffers and polls input.
// Escape closes the window.
func (w *Window) Update() {
	w.Clear(colornames.Black)
	w.imd.Draw(w)
	if w.JustPressed(pixelgl.KeyEscape) {
		w.SetClosed(true)
	}
	w.Window.Update()
}

// pixelRect maps CHIP-8 (x, y), origin top left, to window space, origin bottom left.
func pixelRect(x, y int, scale float64) pixel.Rect {
	top := float64(cpu.Height - y)
	return pixel.R(float64(x)*scale, (top-1)*scale, float64(x+1)*scale, top*scale)
}
