package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/internal/game/avatar"
	"github.com/Faultbox/pocketsprite/internal/game/world"
	"github.com/Faultbox/pocketsprite/internal/logger"
)

// Background is the clear color behind the tilemap.
const Background uint16 = 0x0000

// PlayingState runs the world. Menu pauses.
type PlayingState struct {
	world   *world.World
	manager *Manager
	onEvent func(avatar.Event)
	pause   *PausedState
	log     *zap.Logger

	// Buttons held on the last played tick. Releases that happen while
	// another state is current are replayed on the first tick back.
	lastHeld input.Buttons
	resumed  bool
}

// NewPlayingState creates the gameplay state for w.
func NewPlayingState(w *world.World, manager *Manager) *PlayingState {
	s := &PlayingState{
		world:   w,
		manager: manager,
		log:     logger.Named("playing"),
	}
	s.pause = NewPausedState(w, manager, s)
	return s
}

// OnEvent sets the callback receiving avatar events (jumped, landed).
func (s *PlayingState) OnEvent(fn func(avatar.Event)) {
	s.onEvent = fn
}

// World returns the running world.
func (s *PlayingState) World() *world.World {
	return s.world
}

// Name implements State.
func (s *PlayingState) Name() string {
	return "playing"
}

// Enter implements State.
func (s *PlayingState) Enter() error {
	s.log.Debug("entering", zap.Uint64("tick", s.world.Ticks()))
	s.resumed = true
	return nil
}

// Exit implements State.
func (s *PlayingState) Exit() error {
	return nil
}

// Update implements State.
func (s *PlayingState) Update(in input.Snapshot, dt float32) error {
	if s.resumed {
		s.resumed = false
		in = in.WithReleased(s.lastHeld &^ in.Buttons())
	}
	s.lastHeld = in.Buttons()

	if in.Pressed(input.Menu) {
		s.manager.Change(s.pause)
		return nil
	}
	if in.Pressed(input.B) {
		s.world.SetOverlay(!s.world.Overlay())
	}

	ev := s.world.Update(in)
	if ev != avatar.EventNone && s.onEvent != nil {
		s.onEvent(ev)
	}
	return nil
}

// Render implements State.
func (s *PlayingState) Render(fb *display.Framebuffer) error {
	fb.Clear(Background)
	return s.world.Render(fb)
}
