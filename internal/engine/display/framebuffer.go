// Package display provides in-memory display sinks: the RGB565 framebuffer
// presented to the screen and a recorder used by tools and tests.
package display

import (
	"encoding/binary"
	"image"

	"github.com/cespare/xxhash"

	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

// Handheld screen dimensions.
const (
	ScreenWidth  = 80
	ScreenHeight = 64
)

// Framebuffer is an RGB565 pixel buffer. Indexed cells are resolved through
// the active palette at paint time, so a palette change only affects blits
// issued after it.
type Framebuffer struct {
	width   int
	height  int
	pix     []uint16
	palette palette.Palette
}

// NewFramebuffer creates a black framebuffer using the default palette.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:   width,
		height:  height,
		pix:     make([]uint16, width*height),
		palette: palette.Default(),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (w, h int) {
	return fb.width, fb.height
}

// PaintPixel writes one cell. Coordinates outside the buffer are ignored.
func (fb *Framebuffer) PaintPixel(x, y int, v uint16, mode atlas.ColorMode) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	if mode == atlas.ModeIndexed {
		v = fb.palette.Color(v)
	}
	fb.pix[y*fb.width+x] = v
}

// SetPalette replaces the active palette.
func (fb *Framebuffer) SetPalette(p palette.Palette) {
	fb.palette = p
}

// Palette returns the active palette.
func (fb *Framebuffer) Palette() palette.Palette {
	return fb.palette
}

// Clear fills the buffer with c.
func (fb *Framebuffer) Clear(c uint16) {
	for i := range fb.pix {
		fb.pix[i] = c
	}
}

// At returns the RGB565 color at (x, y), or 0 outside the buffer.
func (fb *Framebuffer) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	return fb.pix[y*fb.width+x]
}

// Bytes returns the buffer as little-endian RGB565, the handheld's native
// screen layout.
func (fb *Framebuffer) Bytes() []byte {
	out := make([]byte, len(fb.pix)*2)
	for i, v := range fb.pix {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

// Checksum hashes the buffer contents. Two frames with equal checksums are
// treated as identical by headless runs and regression tests.
func (fb *Framebuffer) Checksum() uint64 {
	return xxhash.Sum64(fb.Bytes())
}

// RGBA converts the buffer to an 8-bit RGBA image.
func (fb *Framebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.ReadRGBA(img.Pix)
	return img
}

// ReadRGBA writes the buffer as tightly packed RGBA bytes into dst, which
// must hold width*height*4 bytes.
func (fb *Framebuffer) ReadRGBA(dst []byte) {
	for i, v := range fb.pix {
		c := palette.ToRGBA(v)
		o := i * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
}
