// Package game implements the main game loop and state management.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/assets"
	"github.com/Faultbox/pocketsprite/internal/config"
	"github.com/Faultbox/pocketsprite/internal/engine/audio"
	"github.com/Faultbox/pocketsprite/internal/engine/debug"
	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
	"github.com/Faultbox/pocketsprite/internal/engine/renderer"
	"github.com/Faultbox/pocketsprite/internal/engine/window"
	"github.com/Faultbox/pocketsprite/internal/game/avatar"
	"github.com/Faultbox/pocketsprite/internal/game/states"
	"github.com/Faultbox/pocketsprite/internal/game/world"
	"github.com/Faultbox/pocketsprite/internal/logger"
)

// Game is the main game instance.
type Game struct {
	config  *config.Config
	assets  *assets.Manager
	fb      *display.Framebuffer
	states  *states.Manager
	playing *states.PlayingState
	audio   *audio.Manager
	shots   *debug.ScreenshotCapture

	tracker   input.Tracker
	recording input.Recording
	script    *input.Script // drives Run instead of the keyboard while it lasts
	dt        float32

	// Set up by Run.
	window   *window.Window
	renderer *renderer.Renderer

	log *zap.Logger
}

// New loads assets and builds the world. No window or audio device is
// opened until Run, so a Game can be stepped headless.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		assets: assets.NewManager(),
		fb:     display.NewFramebuffer(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight),
		states: states.NewManager(),
		dt:     1 / float32(cfg.Display.FPS),
		shots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "pocket",
			debug.FormatBMP, cfg.Debug.ScreenshotScale),
		log: logger.Named("game"),
	}

	if cfg.Assets.Dir != "" {
		if err := g.assets.AddDir(cfg.Assets.Dir); err != nil {
			return nil, err
		}
	}

	params := avatar.DefaultParams()
	params.Speed = cfg.Avatar.Speed
	params.JumpVelocity = cfg.Avatar.JumpVelocity
	params.Gravity = cfg.Avatar.Gravity
	params.JumpFrame = cfg.Avatar.JumpFrame
	params.ScreenWidth = cfg.Display.ScreenWidth

	w, err := world.New(g.assets, world.Config{
		Level:      cfg.Assets.Level,
		Sprite:     cfg.Avatar.Sprite,
		Palette:    cfg.Avatar.Palette,
		ShirtColor: cfg.Avatar.ShirtColor,
		Params:     params,
		Overlay:    cfg.Debug.Overlay,
	})
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	g.playing = states.NewPlayingState(w, g.states)
	g.playing.OnEvent(g.onAvatarEvent)
	g.states.Change(g.playing)

	g.log.Info("game initialized",
		zap.String("sprite", cfg.Avatar.Sprite),
		zap.String("level", cfg.Assets.Level),
		zap.Int("fps", cfg.Display.FPS))
	return g, nil
}

// Step runs one tick: edge detection, state update, render into the
// framebuffer. The held set is appended to the input recording.
func (g *Game) Step(held input.Buttons) error {
	g.recording.Record(held)
	in := g.tracker.Next(held)

	if err := g.states.Update(in, g.dt); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := g.states.Render(g.fb); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// RunHeadless steps the game ticks times with input from script (nil means
// no buttons) and returns the final framebuffer. With ticks <= 0 the script
// length is used.
func (g *Game) RunHeadless(ticks int, script *input.Script) (*display.Framebuffer, error) {
	if ticks <= 0 && script != nil {
		ticks = script.Len()
	}
	for i := 0; i < ticks; i++ {
		held := input.None
		if script != nil {
			held, _ = script.Next()
		}
		if err := g.Step(held); err != nil {
			return nil, fmt.Errorf("tick %d: %w", i, err)
		}
	}
	g.log.Debug("headless run finished",
		zap.Int("ticks", ticks),
		zap.String("checksum", fmt.Sprintf("%016x", g.fb.Checksum())))
	return g.fb, nil
}

// SetScript makes Run take input from s until it runs out, then from the
// keyboard.
func (g *Game) SetScript(s *input.Script) {
	g.script = s
}

// Framebuffer returns the screen buffer.
func (g *Game) Framebuffer() *display.Framebuffer {
	return g.fb
}

// World returns the running world.
func (g *Game) World() *world.World {
	return g.playing.World()
}

// State returns the name of the current state.
func (g *Game) State() string {
	if s := g.states.Current(); s != nil {
		return s.Name()
	}
	return ""
}

// Recording returns every held set stepped so far.
func (g *Game) Recording() *input.Recording {
	return &g.recording
}

// Screenshot writes the current frame into the screenshot directory.
func (g *Game) Screenshot() (string, error) {
	path, err := g.shots.Capture(g.fb.RGBA())
	if err != nil {
		return "", err
	}
	g.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

func (g *Game) onAvatarEvent(ev avatar.Event) {
	if g.audio == nil {
		return
	}
	var err error
	if ev.Has(avatar.EventJumped) {
		err = g.audio.Play(audio.EffectJump)
	}
	if ev.Has(avatar.EventLanded) {
		err = g.audio.Play(audio.EffectLand)
	}
	if err != nil {
		g.log.Warn("sound failed", zap.Error(err))
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	g.assets.Close()
}
