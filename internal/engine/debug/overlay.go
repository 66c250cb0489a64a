package debug

import (
	"github.com/Faultbox/pocketsprite/internal/engine/blit"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
)

// Overlay colors (RGB565).
const (
	GridColor   uint16 = 0x4208
	BoxColor    uint16 = 0x07e0
	GroundColor uint16 = 0xf800
)

// DrawGrid paints tile boundaries over the whole sink.
func DrawGrid(sink blit.Sink, tileW, tileH int, c uint16) {
	if tileW <= 0 || tileH <= 0 {
		return
	}
	w, h := sink.Size()

	for x := 0; x < w; x += tileW {
		for y := 0; y < h; y++ {
			sink.PaintPixel(x, y, c, atlas.ModeDirect)
		}
	}
	for y := 0; y < h; y += tileH {
		for x := 0; x < w; x++ {
			sink.PaintPixel(x, y, c, atlas.ModeDirect)
		}
	}
}

// DrawBox paints the outline of r. Parts outside the sink are clipped.
func DrawBox(sink blit.Sink, r atlas.Rect, c uint16) {
	if r.Empty() {
		return
	}
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W-1, r.Y+r.H-1

	for x := x0; x <= x1; x++ {
		paintClipped(sink, x, y0, c)
		paintClipped(sink, x, y1, c)
	}
	for y := y0 + 1; y < y1; y++ {
		paintClipped(sink, x0, y, c)
		paintClipped(sink, x1, y, c)
	}
}

// DrawHLine paints a full-width horizontal line, used for the ground line.
func DrawHLine(sink blit.Sink, y int, c uint16) {
	w, _ := sink.Size()
	for x := 0; x < w; x++ {
		paintClipped(sink, x, y, c)
	}
}

func paintClipped(sink blit.Sink, x, y int, c uint16) {
	w, h := sink.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	sink.PaintPixel(x, y, c, atlas.ModeDirect)
}
