package avatar

import (
	"errors"
	"testing"

	"github.com/Faultbox/pocketsprite/internal/engine/blit"
	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
)

// testSprite builds an 8x8, 4-frame atlas whose cells encode frame and column.
func testSprite(t *testing.T) *atlas.Atlas {
	t.Helper()

	hdr := atlas.Header{FrameWidth: 8, FrameHeight: 8, FrameCount: 4, Transparent: 0xf81f}
	body := make([]uint16, hdr.BodyLen())
	for i := range body {
		f, x := i/64, i%8
		body[i] = uint16(f<<8 | x)
	}
	a, err := atlas.New(hdr, body)
	if err != nil {
		t.Fatalf("atlas.New: %v", err)
	}
	return a
}

func newAvatar(t *testing.T, x, y int) *Avatar {
	t.Helper()

	a, err := New(testSprite(t), DefaultParams(), x, y)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

// driver feeds held-button sets through a tracker like the game loop does.
type driver struct {
	av *Avatar
	tr input.Tracker
}

func (d *driver) tick(held input.Buttons) Event {
	return d.av.Update(d.tr.Next(held))
}

func TestUpdate_ClampLeft(t *testing.T) {
	av := newAvatar(t, -5, 40)
	av.Update(input.Snapshot{})

	if av.X != 0 {
		t.Errorf("X = %d, want 0", av.X)
	}
}

func TestUpdate_ClampRight(t *testing.T) {
	av := newAvatar(t, 71, 40)
	d := &driver{av: av}
	d.tick(input.Right)

	if av.X != 72 {
		t.Errorf("X = %d, want 72 (80 - 8)", av.X)
	}
}

func TestUpdate_MoveRight(t *testing.T) {
	av := newAvatar(t, 36, 40)
	av.Facing = -1
	d := &driver{av: av}

	d.tick(input.Right)

	if av.VX != 2 || av.Facing != 1 || av.X != 38 {
		t.Errorf("got vx=%d facing=%d x=%d, want vx=2 facing=1 x=38", av.VX, av.Facing, av.X)
	}
	if av.State() != Walking {
		t.Errorf("State = %v, want walking", av.State())
	}
}

func TestUpdate_JumpArc(t *testing.T) {
	av := newAvatar(t, 36, 40)
	d := &driver{av: av}

	ev := d.tick(input.A)
	if !ev.Has(EventJumped) {
		t.Error("jump event not reported")
	}
	if av.Y != 35 || av.VY != -4 {
		t.Fatalf("tick 1: y=%d vy=%d, want y=35 vy=-4", av.Y, av.VY)
	}
	if av.Frame() != 3 {
		t.Errorf("jump pose frame = %d, want 3", av.Frame())
	}

	d.tick(input.A)
	if av.Y != 31 || av.VY != -3 {
		t.Fatalf("tick 2: y=%d vy=%d, want y=31 vy=-3", av.Y, av.VY)
	}

	// y after each further tick: 28 26 25 25 26 28 31 35, then lands at 40.
	wantY := []int{28, 26, 25, 25, 26, 28, 31, 35}
	for i, y := range wantY {
		if ev := d.tick(input.None); ev.Has(EventLanded) {
			t.Fatalf("landed early on tick %d", i+3)
		}
		if av.Y != y || !av.Jumping {
			t.Fatalf("tick %d: y=%d jumping=%v, want y=%d in the air", i+3, av.Y, av.Jumping, y)
		}
	}

	ev = d.tick(input.None)
	if !ev.Has(EventLanded) {
		t.Error("land event not reported")
	}
	if av.Y != 40 || av.Jumping || av.VX != 0 || av.VY != 0 || av.Frame() != 0 {
		t.Errorf("after landing: %+v frame=%d", *av, av.Frame())
	}
}

func TestUpdate_GroundSnap(t *testing.T) {
	av := newAvatar(t, 10, 45)
	av.Jumping = true
	av.VY = 3

	ev := av.Update(input.Snapshot{})

	if !ev.Has(EventLanded) {
		t.Error("expected landing")
	}
	if av.Y != 40 {
		t.Errorf("Y = %d, want snapped to 40", av.Y)
	}
	if av.Jumping || av.VY != 0 {
		t.Errorf("jumping=%v vy=%d after landing", av.Jumping, av.VY)
	}
}

func TestUpdate_NoDoubleJump(t *testing.T) {
	av := newAvatar(t, 36, 40)
	d := &driver{av: av}

	d.tick(input.A)
	d.tick(input.None)
	ev := d.tick(input.A)

	if ev.Has(EventJumped) {
		t.Error("jumped while airborne")
	}
	if av.VY != -2 {
		t.Errorf("VY = %d, want -2", av.VY)
	}
}

func TestUpdate_WalkCycleEveryOtherTick(t *testing.T) {
	av := newAvatar(t, 0, 40)
	d := &driver{av: av}

	want := []int{0, 1, 1, 2, 2, 3, 3, 0, 0, 1}
	for i, f := range want {
		d.tick(input.Right)
		if av.Frame() != f {
			t.Fatalf("tick %d: frame %d, want %d", i, av.Frame(), f)
		}
	}
}

func TestUpdate_ReleaseStops(t *testing.T) {
	av := newAvatar(t, 36, 40)
	d := &driver{av: av}

	d.tick(input.Left)
	d.tick(input.Left)
	d.tick(input.None)

	if av.State() != Idle || av.VX != 0 {
		t.Errorf("state %v vx=%d after release", av.State(), av.VX)
	}
	if av.Facing != -1 {
		t.Errorf("facing reset to %d while idle", av.Facing)
	}
	if av.Frame() != 0 {
		t.Errorf("idle frame %d, want 0", av.Frame())
	}
}

func TestUpdate_ReleaseWhileJumpingKeepsMomentum(t *testing.T) {
	av := newAvatar(t, 36, 40)
	d := &driver{av: av}

	d.tick(input.Right | input.A)
	d.tick(input.None)

	if av.VX != 2 || !av.Jumping {
		t.Errorf("vx=%d jumping=%v, want momentum kept in the air", av.VX, av.Jumping)
	}
	if av.Facing != 1 {
		t.Errorf("facing = %d", av.Facing)
	}
}

func TestDraw_MirrorsWhenFacingLeft(t *testing.T) {
	av := newAvatar(t, 10, 20)
	av.Facing = -1

	got := display.NewRecorder(80, 64)
	if err := av.Draw(got); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := display.NewRecorder(80, 64)
	if err := blit.Draw(want, av.Sprite(), 0, 10, 20, blit.WithSize(-8, 8)); err != nil {
		t.Fatalf("blit.Draw failed: %v", err)
	}

	if len(got.Paints) != len(want.Paints) {
		t.Fatalf("paint counts differ: %d vs %d", len(got.Paints), len(want.Paints))
	}
	for i := range got.Paints {
		if got.Paints[i] != want.Paints[i] {
			t.Fatalf("paint %d: %+v, want %+v", i, got.Paints[i], want.Paints[i])
		}
	}
	// Leftmost column shows the sprite's rightmost column.
	if got.Grid()[[2]int{10, 20}] != 7 {
		t.Errorf("mirrored column = %d, want 7", got.Grid()[[2]int{10, 20}])
	}
}

func TestNew_BadJumpFrame(t *testing.T) {
	p := DefaultParams()
	p.JumpFrame = 4

	if _, err := New(testSprite(t), p, 0, 0); !errors.Is(err, atlas.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSpawn(t *testing.T) {
	av, err := Spawn(testSprite(t), DefaultParams())
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if av.X != 36 || av.Y != 40 || av.Facing != 1 || av.State() != Idle {
		t.Errorf("spawned at (%d,%d) facing %d state %v", av.X, av.Y, av.Facing, av.State())
	}
}
