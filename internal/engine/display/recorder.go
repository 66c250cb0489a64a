package display

import (
	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

// Paint is one recorded PaintPixel call.
type Paint struct {
	X, Y  int
	Value uint16
	Mode  atlas.ColorMode
}

// Recorder is a sink that records every call instead of drawing.
type Recorder struct {
	Width    int
	Height   int
	Paints   []Paint
	Palettes []palette.Palette
}

// NewRecorder creates a recorder reporting the given screen size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// Size returns the reported screen size.
func (r *Recorder) Size() (w, h int) {
	return r.Width, r.Height
}

// PaintPixel records the call.
func (r *Recorder) PaintPixel(x, y int, v uint16, mode atlas.ColorMode) {
	r.Paints = append(r.Paints, Paint{X: x, Y: y, Value: v, Mode: mode})
}

// SetPalette records the call.
func (r *Recorder) SetPalette(p palette.Palette) {
	r.Palettes = append(r.Palettes, p)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Paints = r.Paints[:0]
	r.Palettes = r.Palettes[:0]
}

// Grid returns the last value painted at each position. Positions never
// painted are absent.
func (r *Recorder) Grid() map[[2]int]uint16 {
	grid := make(map[[2]int]uint16, len(r.Paints))
	for _, p := range r.Paints {
		grid[[2]int{p.X, p.Y}] = p.Value
	}
	return grid
}
