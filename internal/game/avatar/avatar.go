// Package avatar implements the player character: input intent, integer
// physics with gravity and a ground line, frame selection and drawing.
package avatar

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/engine/blit"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/internal/logger"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

// State is the animation state derived from velocity and the jump flag.
type State int

const (
	Idle State = iota
	Walking
	Jumping
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case Jumping:
		return "jumping"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event reports what happened during an update.
type Event uint8

const (
	EventJumped Event = 1 << iota
	EventLanded

	EventNone Event = 0
)

// Has reports whether e contains ev.
func (e Event) Has(ev Event) bool {
	return e&ev != 0
}

// Params tune the controller. Velocities are pixels per tick.
type Params struct {
	Speed        int
	JumpVelocity int
	Gravity      int
	JumpFrame    int
	GroundY      int
	ScreenWidth  int
}

// DefaultParams returns the handheld demo tuning.
func DefaultParams() Params {
	return Params{
		Speed:        2,
		JumpVelocity: -5,
		Gravity:      1,
		JumpFrame:    3,
		GroundY:      48,
		ScreenWidth:  80,
	}
}

// Avatar is the controller state. It is owned by a single scene and mutated
// once per tick by Update.
type Avatar struct {
	X, Y    int
	VX, VY  int
	Facing  int
	Jumping bool

	params Params
	sprite *atlas.Atlas
	frame  int
	ticks  uint64
	log    *zap.Logger
}

// New creates an idle avatar facing right at (x, y).
func New(sprite *atlas.Atlas, p Params, x, y int) (*Avatar, error) {
	if err := sprite.CheckFrame(p.JumpFrame); err != nil {
		return nil, fmt.Errorf("jump pose: %w", err)
	}
	return &Avatar{
		X:      x,
		Y:      y,
		Facing: 1,
		params: p,
		sprite: sprite,
		log:    logger.Named("avatar"),
	}, nil
}

// Spawn creates an avatar standing on the ground line, centered horizontally.
func Spawn(sprite *atlas.Atlas, p Params) (*Avatar, error) {
	w, h := sprite.FrameSize()
	x, _ := blit.Centered(p.ScreenWidth, 0, w, 0)
	return New(sprite, p, x, p.GroundY-h)
}

// Frame returns the current sprite frame.
func (a *Avatar) Frame() int {
	return a.frame
}

// Params returns the controller tuning.
func (a *Avatar) Params() Params {
	return a.params
}

// Sprite returns the avatar atlas.
func (a *Avatar) Sprite() *atlas.Atlas {
	return a.sprite
}

// State returns the current animation state.
func (a *Avatar) State() State {
	switch {
	case a.Jumping:
		return Jumping
	case a.VX != 0:
		return Walking
	default:
		return Idle
	}
}

// MoveLeft sets a leftward velocity and faces left.
func (a *Avatar) MoveLeft() {
	a.VX = -a.params.Speed
	a.Facing = -1
}

// MoveRight sets a rightward velocity and faces right.
func (a *Avatar) MoveRight() {
	a.VX = a.params.Speed
	a.Facing = 1
}

// Stop zeroes velocity, leaves the jump and shows the rest pose. Facing is
// kept.
func (a *Avatar) Stop() {
	a.VX, a.VY = 0, 0
	a.frame = 0
	a.Jumping = false
}

// Jump launches the avatar. It does nothing while already airborne.
func (a *Avatar) Jump() bool {
	if a.Jumping {
		return false
	}
	a.VY = a.params.JumpVelocity
	a.Jumping = true
	return true
}

// Update advances the avatar by one tick.
func (a *Avatar) Update(in input.Snapshot) Event {
	prev := a.State()
	var ev Event

	// Intent
	switch {
	case in.Held(input.Left):
		a.MoveLeft()
	case in.Held(input.Right):
		a.MoveRight()
	case in.Released(input.Left | input.Right):
		if !a.Jumping {
			a.Stop()
		}
	}
	if in.Pressed(input.A) && a.Jump() {
		ev |= EventJumped
	}

	a.X += a.VX
	a.Y += a.VY

	a.selectFrame()
	a.clamp()

	if a.Jumping {
		a.VY += a.params.Gravity
		_, h := a.sprite.FrameSize()
		if a.Y+h >= a.params.GroundY {
			a.Stop()
			a.Y = a.params.GroundY - h
			ev |= EventLanded
		}
	}

	a.ticks++

	if cur := a.State(); cur != prev {
		a.log.Debug("state change",
			zap.Stringer("from", prev),
			zap.Stringer("to", cur),
			zap.Int("x", a.X),
			zap.Int("y", a.Y))
	}

	return ev
}

// selectFrame picks the jump pose in the air and advances the walk cycle on
// every other tick while moving.
func (a *Avatar) selectFrame() {
	switch {
	case a.Jumping:
		a.frame = a.params.JumpFrame
	case a.VX != 0:
		if a.ticks&1 == 1 {
			a.frame = (a.frame + 1) % a.sprite.FrameCount()
		}
	default:
		a.frame = 0
	}
}

func (a *Avatar) clamp() {
	w, _ := a.sprite.FrameSize()
	maxX := a.params.ScreenWidth - w
	if a.X < 0 {
		a.X = 0
	} else if a.X > maxX {
		a.X = maxX
	}
}

// Draw blits the current frame, mirrored when facing left.
func (a *Avatar) Draw(sink blit.Sink) error {
	var opts []blit.Option
	if a.Facing < 0 {
		opts = append(opts, blit.Mirrored())
	}
	return blit.Draw(sink, a.sprite, a.frame, a.X, a.Y, opts...)
}

// DrawWithPalette activates p and draws. Used for indexed sprites.
func (a *Avatar) DrawWithPalette(sink blit.Sink, p palette.Palette) error {
	sink.SetPalette(p)
	return a.Draw(sink)
}
