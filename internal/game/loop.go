package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gopxl/mainthread/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/engine/audio"
	"github.com/Faultbox/pocketsprite/internal/engine/clock"
	"github.com/Faultbox/pocketsprite/internal/engine/renderer"
	"github.com/Faultbox/pocketsprite/internal/engine/window"
)

// Run opens the window and audio device and runs the game loop until the
// window is closed or ctx is cancelled. It must be called from inside
// mainthread.Run; SDL and OpenGL calls are funnelled to the main thread.
func (g *Game) Run(ctx context.Context) error {
	if err := g.openWindow(); err != nil {
		return err
	}
	g.openAudio()

	ticker := clock.New(g.config.Display.FPS)
	defer ticker.Stop()
	g.dt = ticker.DeltaSeconds()

	g.log.Info("starting game loop")

	for {
		var ev window.Events
		mainthread.Call(func() { ev = g.window.Poll() })

		if ev.Quit {
			return nil
		}
		if ev.Fullscreen {
			var err error
			mainthread.Call(func() { err = g.window.ToggleFullscreen() })
			if err != nil {
				g.log.Warn("fullscreen toggle failed", zap.Error(err))
			}
		}
		if ev.Resized {
			mainthread.Call(func() { g.renderer.Resize(ev.Width, ev.Height) })
		}

		held := ev.Held
		if g.script != nil {
			if h, ok := g.script.Next(); ok {
				held = h
			} else {
				g.script = nil
			}
		}
		if err := g.Step(held); err != nil {
			return err
		}

		if ev.Screenshot {
			if _, err := g.Screenshot(); err != nil {
				g.log.Warn("screenshot failed", zap.Error(err))
			}
		}

		mainthread.Call(func() {
			g.renderer.Present(g.fb)
			g.window.SwapBuffers()
		})

		if err := ticker.WaitContext(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if g.config.Debug.ShowFPS && ticker.Frame()%uint64(g.config.Display.FPS) == 0 {
			title := fmt.Sprintf("%s - %.1f fps - %s", g.config.Display.Title, ticker.FPS(), g.State())
			mainthread.Call(func() { g.window.SetTitle(title) })
		}
	}
}

func (g *Game) openWindow() error {
	width, height := g.config.WindowSize()

	var err error
	mainthread.Call(func() {
		g.window, err = window.New(window.Config{
			Title:      g.config.Display.Title,
			Width:      width,
			Height:     height,
			MinWidth:   g.config.Display.ScreenWidth,
			MinHeight:  g.config.Display.ScreenHeight,
			Fullscreen: g.config.Display.Fullscreen,
			VSync:      g.config.Display.VSync,
		})
		if err != nil {
			err = fmt.Errorf("failed to create window: %w", err)
			return
		}

		// Renderer needs the GL context created by the window.
		dw, dh := g.window.GetSize()
		g.renderer, err = renderer.New(renderer.Config{
			Width:        dw,
			Height:       dh,
			SourceWidth:  g.config.Display.ScreenWidth,
			SourceHeight: g.config.Display.ScreenHeight,
		})
		if err != nil {
			g.window.Close()
			g.window = nil
			err = fmt.Errorf("failed to create renderer: %w", err)
		}
	})
	return err
}

// openAudio starts sound output. Failure is not fatal: the game runs silent.
func (g *Game) openAudio() {
	if g.config.Audio.Muted {
		return
	}

	m := audio.New()
	m.SetMasterVolume(g.config.Audio.MasterVolume)
	m.SetSFXVolume(g.config.Audio.SFXVolume)

	for e, name := range map[audio.Effect]string{
		audio.EffectJump: g.config.Audio.JumpSound,
		audio.EffectLand: g.config.Audio.LandSound,
	} {
		if name == "" {
			continue
		}
		data, err := g.assets.Load(name)
		if err == nil {
			err = m.LoadEffect(e, data)
		}
		if err != nil {
			g.log.Warn("keeping synthesized sound", zap.Stringer("effect", e), zap.Error(err))
		}
	}

	if err := m.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	g.audio = m
}
