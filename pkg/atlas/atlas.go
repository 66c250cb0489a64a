// Package atlas implements the frame-based sprite atlas format used by the
// handheld display: a six-cell header followed by a flat table of pixel cells.
package atlas

import (
	"errors"
	"fmt"
)

// Atlas errors.
var (
	ErrFormat     = errors.New("malformed atlas table")
	ErrOutOfRange = errors.New("atlas access out of range")
)

// HeaderSize is the number of cells preceding the pixel body.
const HeaderSize = 6

// MaxPaletteSlot is the highest palette slot an indexed cell may reference.
const MaxPaletteSlot = 15

// ColorMode tells how a cell value is interpreted.
type ColorMode uint16

const (
	// ModeDirect cells are RGB565 colors.
	ModeDirect ColorMode = 0
	// ModeIndexed cells are palette slots 0-15.
	ModeIndexed ColorMode = 1
)

// String returns the mode name.
func (m ColorMode) String() string {
	switch m {
	case ModeDirect:
		return "rgb565"
	case ModeIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("mode(%d)", uint16(m))
	}
}

// Header is the metadata block at the start of every atlas table.
type Header struct {
	FrameWidth  int
	FrameHeight int
	FrameCount  int
	LoopStart   int // frame the animation loops back to
	Transparent uint16
	Mode        ColorMode
}

// FrameCells returns the number of cells in one frame.
func (h Header) FrameCells() int {
	return h.FrameWidth * h.FrameHeight
}

// BodyLen returns the number of body cells the header declares.
func (h Header) BodyLen() int {
	return h.FrameCount * h.FrameCells()
}

// Table returns the header encoded as its six leading cells.
func (h Header) Table() []uint16 {
	return []uint16{
		uint16(h.FrameWidth),
		uint16(h.FrameHeight),
		uint16(h.FrameCount),
		uint16(h.LoopStart),
		h.Transparent,
		uint16(h.Mode),
	}
}

// Atlas is an immutable multi-frame image sharing one header.
// Frame selection lives outside the atlas (see Animator).
type Atlas struct {
	header Header
	pixels []uint16
}

// Parse decodes a flat atlas table. The table is copied, so the caller may
// reuse it afterwards.
func Parse(table []uint16) (*Atlas, error) {
	if len(table) < HeaderSize {
		return nil, fmt.Errorf("%w: %d cells, header needs %d", ErrFormat, len(table), HeaderSize)
	}

	h := Header{
		FrameWidth:  int(table[0]),
		FrameHeight: int(table[1]),
		FrameCount:  int(table[2]),
		LoopStart:   int(table[3]),
		Transparent: table[4],
		Mode:        ColorMode(table[5]),
	}

	return New(h, table[HeaderSize:])
}

// New builds an atlas from a header and its pixel body. The body is copied.
func New(h Header, body []uint16) (*Atlas, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if len(body) != h.BodyLen() {
		return nil, fmt.Errorf("%w: body has %d cells, header declares %d (%dx%d x %d frames)",
			ErrFormat, len(body), h.BodyLen(), h.FrameWidth, h.FrameHeight, h.FrameCount)
	}

	if h.Mode == ModeIndexed {
		for i, v := range body {
			if v > MaxPaletteSlot && v != h.Transparent {
				return nil, fmt.Errorf("%w: cell %d references palette slot %d", ErrFormat, i, v)
			}
		}
	}

	pixels := make([]uint16, len(body))
	copy(pixels, body)

	return &Atlas{header: h, pixels: pixels}, nil
}

// MustParse is like Parse but panics on error. Intended for compiled-in tables.
func MustParse(table []uint16) *Atlas {
	a, err := Parse(table)
	if err != nil {
		panic(err)
	}
	return a
}

func (h Header) validate() error {
	if h.FrameWidth <= 0 || h.FrameHeight <= 0 {
		return fmt.Errorf("%w: invalid frame size %dx%d", ErrFormat, h.FrameWidth, h.FrameHeight)
	}
	if h.FrameCount <= 0 {
		return fmt.Errorf("%w: no frames", ErrFormat)
	}
	if h.LoopStart >= h.FrameCount {
		return fmt.Errorf("%w: loop start %d beyond %d frames", ErrFormat, h.LoopStart, h.FrameCount)
	}
	if h.Mode != ModeDirect && h.Mode != ModeIndexed {
		return fmt.Errorf("%w: unknown color mode %d", ErrFormat, uint16(h.Mode))
	}
	return nil
}

// Header returns the atlas metadata.
func (a *Atlas) Header() Header {
	return a.header
}

// FrameCount returns the number of frames.
func (a *Atlas) FrameCount() int {
	return a.header.FrameCount
}

// FrameSize returns the width and height of a single frame.
func (a *Atlas) FrameSize() (w, h int) {
	return a.header.FrameWidth, a.header.FrameHeight
}

// Bounds returns the rectangle covering one full frame.
func (a *Atlas) Bounds() Rect {
	return Rect{W: a.header.FrameWidth, H: a.header.FrameHeight}
}

// LoopStart returns the frame an animation wraps back to.
func (a *Atlas) LoopStart() int {
	return a.header.LoopStart
}

// Transparent returns the sentinel cell value that suppresses painting.
func (a *Atlas) Transparent() uint16 {
	return a.header.Transparent
}

// Mode returns how cells are interpreted.
func (a *Atlas) Mode() ColorMode {
	return a.header.Mode
}

// IsTransparent reports whether v is the transparent sentinel.
func (a *Atlas) IsTransparent(v uint16) bool {
	return v == a.header.Transparent
}

// PixelAt returns the raw cell (color or palette slot) of frame at (x, y).
func (a *Atlas) PixelAt(frame, x, y int) (uint16, error) {
	if err := a.CheckFrame(frame); err != nil {
		return 0, err
	}
	if x < 0 || y < 0 || x >= a.header.FrameWidth || y >= a.header.FrameHeight {
		return 0, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d frame",
			ErrOutOfRange, x, y, a.header.FrameWidth, a.header.FrameHeight)
	}
	return a.pixels[a.offset(frame, x, y)], nil
}

// CheckFrame returns ErrOutOfRange unless frame is a valid frame index.
func (a *Atlas) CheckFrame(frame int) error {
	if frame < 0 || frame >= a.header.FrameCount {
		return fmt.Errorf("%w: frame %d of %d", ErrOutOfRange, frame, a.header.FrameCount)
	}
	return nil
}

// Row returns the cells of one frame row without copying. Callers must not
// modify the result. frame and y must already be validated.
func (a *Atlas) Row(frame, y int) []uint16 {
	start := a.offset(frame, 0, y)
	return a.pixels[start : start+a.header.FrameWidth : start+a.header.FrameWidth]
}

// Table re-encodes the atlas as a flat table (header followed by body).
func (a *Atlas) Table() []uint16 {
	out := make([]uint16, 0, HeaderSize+len(a.pixels))
	out = append(out, a.header.Table()...)
	return append(out, a.pixels...)
}

func (a *Atlas) offset(frame, x, y int) int {
	return frame*a.header.FrameCells() + y*a.header.FrameWidth + x
}
