// Package blit paints atlas frames onto a display sink with optional
// cropping, nearest-neighbour scaling and mirroring.
package blit

import (
	"fmt"

	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

// Sink receives painted pixels. Implementations decide how indexed cells
// map to colors through the active palette.
type Sink interface {
	// Size returns the visible area; paints outside it are never issued.
	Size() (w, h int)
	// PaintPixel writes a raw cell (RGB565 color or palette slot).
	PaintPixel(x, y int, v uint16, mode atlas.ColorMode)
	// SetPalette replaces the palette used for indexed cells.
	SetPalette(p palette.Palette)
}

// Options describe the source rectangle and destination size of a blit.
// The zero value draws the full frame at its natural size.
type Options struct {
	crop    atlas.Rect
	hasCrop bool
	width   int
	height  int
	hasSize bool
	mirror  bool
}

// Option configures a blit.
type Option func(*Options)

// WithCrop draws only the given rectangle of the frame.
func WithCrop(r atlas.Rect) Option {
	return func(o *Options) {
		o.crop = r
		o.hasCrop = true
	}
}

// WithSize stretches the source to w x h destination pixels. A negative
// width mirrors horizontally, a negative height flips vertically.
func WithSize(w, h int) Option {
	return func(o *Options) {
		o.width = w
		o.height = h
		o.hasSize = true
	}
}

// Mirrored negates the resolved destination width.
func Mirrored() Option {
	return func(o *Options) {
		o.mirror = !o.mirror
	}
}

// Draw paints frame of a with its top-left corner at (destX, destY).
//
// Destination pixel (i, j) samples source (i*srcW/dstW, j*srcH/dstH) using
// integer division, so scaling is nearest-neighbour with a single floor.
// Transparent cells leave the destination untouched and pixels falling
// outside the sink are clipped. The only error is atlas.ErrOutOfRange for a
// bad frame index or a crop rectangle that leaves the frame.
func Draw(sink Sink, a *atlas.Atlas, frame, destX, destY int, opts ...Option) error {
	if err := a.CheckFrame(frame); err != nil {
		return err
	}

	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	src := a.Bounds()
	if o.hasCrop {
		if !src.Contains(o.crop) {
			fw, fh := a.FrameSize()
			return fmt.Errorf("%w: crop %s exceeds %dx%d frame", atlas.ErrOutOfRange, o.crop, fw, fh)
		}
		src = o.crop
	}

	dw, dh := src.W, src.H
	if o.hasSize {
		dw, dh = o.width, o.height
	}
	if o.mirror {
		dw = -dw
	}

	flipX, flipY := dw < 0, dh < 0
	if flipX {
		dw = -dw
	}
	if flipY {
		dh = -dh
	}
	if dw == 0 || dh == 0 || src.Empty() {
		return nil
	}

	sw, sh := sink.Size()
	i0, i1 := clipSpan(destX, dw, sw)
	j0, j1 := clipSpan(destY, dh, sh)

	mode := a.Mode()
	for j := j0; j < j1; j++ {
		sy := j * src.H / dh
		if flipY {
			sy = src.H - 1 - sy
		}
		row := a.Row(frame, src.Y+sy)

		for i := i0; i < i1; i++ {
			sx := i * src.W / dw
			if flipX {
				sx = src.W - 1 - sx
			}
			v := row[src.X+sx]
			if a.IsTransparent(v) {
				continue
			}
			sink.PaintPixel(destX+i, destY+j, v, mode)
		}
	}

	return nil
}

// DrawWithPalette activates p on the sink and then draws. Used for recoloring
// an indexed sprite without touching the atlas.
func DrawWithPalette(sink Sink, p palette.Palette, a *atlas.Atlas, frame, destX, destY int, opts ...Option) error {
	sink.SetPalette(p)
	return Draw(sink, a, frame, destX, destY, opts...)
}

// Centered returns the top-left corner that centers a w x h box on a
// screenW x screenH screen, rounding toward negative infinity.
func Centered(screenW, screenH, w, h int) (x, y int) {
	return floorHalf(screenW - w), floorHalf(screenH - h)
}

// clipSpan returns the range [lo, hi) of offsets in [0, extent) whose
// position start+offset lies in [0, limit).
func clipSpan(start, extent, limit int) (lo, hi int) {
	lo, hi = 0, extent
	if start < 0 {
		lo = -start
	}
	if start+extent > limit {
		hi = limit - start
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}
