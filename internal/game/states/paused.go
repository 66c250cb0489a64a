package states

import (
	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/internal/game/world"
	"github.com/Faultbox/pocketsprite/internal/logger"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

// Pause screen settings.
const (
	PauseColor   uint16  = 0x07e0 // pulsed from black to full green
	PausePeriod  float32 = 2      // seconds
	PortraitZoom         = 3
)

// PausedState freezes the world and shows the avatar enlarged over a
// pulsing background. Menu resumes.
type PausedState struct {
	world   *world.World
	manager *Manager
	resume  State
	pulser  *palette.Pulser
}

// NewPausedState creates a pause screen returning to resume.
func NewPausedState(w *world.World, manager *Manager, resume State) *PausedState {
	return &PausedState{
		world:   w,
		manager: manager,
		resume:  resume,
		pulser:  palette.NewPulser(PausePeriod),
	}
}

// Name implements State.
func (s *PausedState) Name() string {
	return "paused"
}

// Enter restarts the pulse from black.
func (s *PausedState) Enter() error {
	s.pulser = palette.NewPulser(PausePeriod)
	logger.Debug("paused")
	return nil
}

// Exit implements State.
func (s *PausedState) Exit() error {
	logger.Debug("resumed")
	return nil
}

// Update implements State.
func (s *PausedState) Update(in input.Snapshot, dt float32) error {
	s.pulser.Update(dt)
	if in.Pressed(input.Menu) {
		s.manager.Change(s.resume)
	}
	return nil
}

// Background returns the current pulsed clear color.
func (s *PausedState) Background() uint16 {
	return s.pulser.Apply(PauseColor)
}

// Render implements State.
func (s *PausedState) Render(fb *display.Framebuffer) error {
	fb.Clear(s.Background())
	return s.world.DrawPortrait(fb, PortraitZoom)
}
