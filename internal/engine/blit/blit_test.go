package blit

import (
	"errors"
	"testing"

	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

const magenta = 0xf81f

// newAtlas builds a direct-color atlas whose cell values are
// 1 + f<<8 | y<<4 | x, except for cells listed in holes which are transparent.
func newAtlas(t *testing.T, w, h, frames int, holes ...[3]int) *atlas.Atlas {
	t.Helper()

	hdr := atlas.Header{FrameWidth: w, FrameHeight: h, FrameCount: frames, Transparent: magenta}
	body := make([]uint16, hdr.BodyLen())
	for f := 0; f < frames; f++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				body[f*w*h+y*w+x] = cell(f, x, y)
			}
		}
	}
	for _, hole := range holes {
		body[hole[0]*w*h+hole[2]*w+hole[1]] = magenta
	}

	a, err := atlas.New(hdr, body)
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}
	return a
}

func cell(f, x, y int) uint16 {
	return uint16(1 + (f<<8 | y<<4 | x))
}

func TestDraw_FullFrameScenario(t *testing.T) {
	// 8x8, 4 frames, transparent 0xf81f, direct color; frame 2 drawn at (10,10).
	holes := [][3]int{{2, 0, 0}, {2, 7, 7}, {2, 3, 4}}
	a := newAtlas(t, 8, 8, 4, holes...)
	rec := display.NewRecorder(display.ScreenWidth, display.ScreenHeight)

	if err := Draw(rec, a, 2, 10, 10); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if len(rec.Paints) != 64-len(holes) {
		t.Fatalf("expected %d paints, got %d", 64-len(holes), len(rec.Paints))
	}
	for _, p := range rec.Paints {
		if p.Value == magenta {
			t.Fatalf("transparent cell painted at (%d,%d)", p.X, p.Y)
		}
		x, y := p.X-10, p.Y-10
		if x < 0 || y < 0 || x >= 8 || y >= 8 {
			t.Fatalf("paint outside the 8x8 block: (%d,%d)", p.X, p.Y)
		}
		if p.Value != cell(2, x, y) {
			t.Errorf("pixel (%d,%d) = 0x%04x, want 0x%04x", x, y, p.Value, cell(2, x, y))
		}
	}
}

func TestDraw_RoundTrip(t *testing.T) {
	a := newAtlas(t, 8, 8, 4, [3]int{1, 2, 2})
	fb := display.NewFramebuffer(display.ScreenWidth, display.ScreenHeight)
	fb.Clear(0x0042)

	if err := Draw(fb, a, 1, 0, 0, WithCrop(a.Bounds()), WithSize(8, 8)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src, _ := a.PixelAt(1, x, y)
			want := src
			if a.IsTransparent(src) {
				want = 0x0042
			}
			if got := fb.At(x, y); got != want {
				t.Errorf("(%d,%d) = 0x%04x, want 0x%04x", x, y, got, want)
			}
		}
	}
}

func TestDraw_Mirror(t *testing.T) {
	a := newAtlas(t, 8, 8, 1)
	normal := display.NewFramebuffer(16, 16)
	mirrored := display.NewFramebuffer(16, 16)

	if err := Draw(normal, a, 0, 2, 3, WithSize(8, 8)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if err := Draw(mirrored, a, 0, 2, 3, WithSize(-8, 8)); err != nil {
		t.Fatalf("mirrored Draw failed: %v", err)
	}

	for y := 3; y < 11; y++ {
		for x := 2; x < 10; x++ {
			rx := 2 + (7 - (x - 2))
			if mirrored.At(x, y) != normal.At(rx, y) {
				t.Fatalf("mirrored (%d,%d) = 0x%04x, want 0x%04x", x, y, mirrored.At(x, y), normal.At(rx, y))
			}
		}
	}

	// Mirrored() is the same request spelled as an option.
	viaOption := display.NewFramebuffer(16, 16)
	if err := Draw(viaOption, a, 0, 2, 3, Mirrored()); err != nil {
		t.Fatalf("Draw with Mirrored failed: %v", err)
	}
	if viaOption.Checksum() != mirrored.Checksum() {
		t.Error("Mirrored() differs from negative width")
	}
}

func TestDraw_VerticalFlip(t *testing.T) {
	a := newAtlas(t, 2, 3, 1)
	fb := display.NewFramebuffer(4, 4)

	if err := Draw(fb, a, 0, 0, 0, WithSize(2, -3)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	for y := 0; y < 3; y++ {
		if got, want := fb.At(0, y), cell(0, 0, 2-y); got != want {
			t.Errorf("row %d = 0x%04x, want 0x%04x", y, got, want)
		}
	}
}

func TestDraw_ScaleUp(t *testing.T) {
	a := newAtlas(t, 4, 2, 1)
	rec := display.NewRecorder(80, 64)

	if err := Draw(rec, a, 0, 0, 0, WithSize(12, 6)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.Paints) != 12*6 {
		t.Fatalf("expected %d paints, got %d", 12*6, len(rec.Paints))
	}

	grid := rec.Grid()
	for j := 0; j < 6; j++ {
		for i := 0; i < 12; i++ {
			want := cell(0, i/3, j/3)
			if got := grid[[2]int{i, j}]; got != want {
				t.Errorf("(%d,%d) = 0x%04x, want 0x%04x", i, j, got, want)
			}
		}
	}
}

func TestDraw_ScaleDownFloors(t *testing.T) {
	a := newAtlas(t, 5, 1, 1)
	rec := display.NewRecorder(80, 64)

	if err := Draw(rec, a, 0, 0, 0, WithSize(2, 1)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// i=0 -> 0*5/2 = 0, i=1 -> 5/2 = 2
	grid := rec.Grid()
	if grid[[2]int{0, 0}] != cell(0, 0, 0) || grid[[2]int{1, 0}] != cell(0, 2, 0) {
		t.Errorf("unexpected samples: %v", grid)
	}
}

func TestDraw_Crop(t *testing.T) {
	a := newAtlas(t, 8, 8, 1)
	rec := display.NewRecorder(80, 64)

	// Skip the first four rows (the head) like a partial draw.
	crop := atlas.Rect{X: 0, Y: 4, W: 8, H: 4}
	if err := Draw(rec, a, 0, 20, 30, WithCrop(crop)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if len(rec.Paints) != 32 {
		t.Fatalf("expected 32 paints, got %d", len(rec.Paints))
	}
	grid := rec.Grid()
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got, want := grid[[2]int{20 + x, 30 + y}], cell(0, x, 4+y); got != want {
				t.Errorf("(%d,%d) = 0x%04x, want 0x%04x", x, y, got, want)
			}
		}
	}
}

func TestDraw_CropOutOfRange(t *testing.T) {
	a := newAtlas(t, 8, 8, 2)
	rec := display.NewRecorder(80, 64)

	crops := []atlas.Rect{
		{X: 0, Y: 0, W: 9, H: 8},
		{X: 4, Y: 4, W: 5, H: 1},
		{X: -1, Y: 0, W: 2, H: 2},
		{X: 0, Y: 0, W: -2, H: 2},
	}
	for _, c := range crops {
		err := Draw(rec, a, 0, 0, 0, WithCrop(c))
		if !errors.Is(err, atlas.ErrOutOfRange) {
			t.Errorf("crop %s: expected ErrOutOfRange, got %v", c, err)
		}
	}
	if len(rec.Paints) != 0 {
		t.Errorf("failed draws painted %d pixels", len(rec.Paints))
	}
}

func TestDraw_FrameOutOfRange(t *testing.T) {
	a := newAtlas(t, 2, 2, 2)
	rec := display.NewRecorder(80, 64)

	for _, f := range []int{-1, 2} {
		if err := Draw(rec, a, f, 0, 0); !errors.Is(err, atlas.ErrOutOfRange) {
			t.Errorf("frame %d: expected ErrOutOfRange, got %v", f, err)
		}
	}
}

func TestDraw_ClipsOffscreen(t *testing.T) {
	a := newAtlas(t, 8, 8, 1)

	tests := []struct {
		name   string
		x, y   int
		paints int
	}{
		{"left edge", -5, 0, 3 * 8},
		{"top edge", 0, -6, 8 * 2},
		{"right edge", 76, 10, 4 * 8},
		{"bottom corner", 78, 60, 2 * 4},
		{"fully outside", -20, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := display.NewRecorder(80, 64)
			if err := Draw(rec, a, 0, tt.x, tt.y); err != nil {
				t.Fatalf("Draw failed: %v", err)
			}
			if len(rec.Paints) != tt.paints {
				t.Errorf("expected %d paints, got %d", tt.paints, len(rec.Paints))
			}
			for _, p := range rec.Paints {
				if p.X < 0 || p.Y < 0 || p.X >= 80 || p.Y >= 64 {
					t.Fatalf("paint outside the screen at (%d,%d)", p.X, p.Y)
				}
				if want := cell(0, p.X-tt.x, p.Y-tt.y); p.Value != want {
					t.Fatalf("clipped paint (%d,%d) = 0x%04x, want 0x%04x", p.X, p.Y, p.Value, want)
				}
			}
		})
	}
}

func TestDraw_ZeroSize(t *testing.T) {
	a := newAtlas(t, 4, 4, 1)
	rec := display.NewRecorder(80, 64)

	if err := Draw(rec, a, 0, 0, 0, WithSize(0, 4)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if err := Draw(rec, a, 0, 0, 0, WithCrop(atlas.Rect{W: 0, H: 0})); err != nil {
		t.Fatalf("Draw with empty crop failed: %v", err)
	}
	if len(rec.Paints) != 0 {
		t.Errorf("zero-size draws painted %d pixels", len(rec.Paints))
	}
}

func TestDrawWithPalette_Indexed(t *testing.T) {
	hdr := atlas.Header{FrameWidth: 2, FrameHeight: 1, FrameCount: 1, Transparent: 0, Mode: atlas.ModeIndexed}
	a, err := atlas.New(hdr, []uint16{0, 0xd})
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}

	fb := display.NewFramebuffer(4, 1)
	fb.Clear(0x1111)

	pinkShirt := palette.Tint(palette.Default(), 0xca30, 0xb, 0xc, 0xd)
	if err := DrawWithPalette(fb, pinkShirt, a, 0, 0, 0); err != nil {
		t.Fatalf("first draw failed: %v", err)
	}
	blueShirt := palette.Tint(palette.Default(), 0x4439, 0xb, 0xc, 0xd)
	if err := DrawWithPalette(fb, blueShirt, a, 0, 2, 0); err != nil {
		t.Fatalf("second draw failed: %v", err)
	}

	if fb.At(0, 0) != 0x1111 || fb.At(2, 0) != 0x1111 {
		t.Error("transparent slot was painted")
	}
	if fb.At(1, 0) != 0xca30 {
		t.Errorf("first copy = 0x%04x, want 0xca30", fb.At(1, 0))
	}
	if fb.At(3, 0) != 0x4439 {
		t.Errorf("second copy = 0x%04x, want 0x4439", fb.At(3, 0))
	}
}

func TestCentered(t *testing.T) {
	tests := []struct {
		sw, sh, w, h int
		x, y         int
	}{
		{80, 64, 8, 8, 36, 28},
		{80, 64, 24, 24, 28, 20},
		{80, 64, 8, 5, 36, 29},
		{80, 64, 83, 64, -2, 0},
	}
	for _, tt := range tests {
		x, y := Centered(tt.sw, tt.sh, tt.w, tt.h)
		if x != tt.x || y != tt.y {
			t.Errorf("Centered(%d,%d,%d,%d) = (%d,%d), want (%d,%d)", tt.sw, tt.sh, tt.w, tt.h, x, y, tt.x, tt.y)
		}
	}
}
