// Package window owns the host window standing in for the handheld screen:
// an SDL2 window with an OpenGL context, plus keyboard polling.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/logger"
)

func init() {
	// SDL and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

// Config describes the host window.
type Config struct {
	Title      string
	Width      int
	Height     int
	MinWidth   int // usually the emulated screen size, 0 = no limit
	MinHeight  int
	Fullscreen bool
	VSync      bool
}

// The presenter only blits a color texture, so no depth buffer is requested.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1}, // highest core profile on macOS
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
}

// Window is an SDL2 window with a current OpenGL context.
type Window struct {
	config     Config
	win        *sdl.Window
	ctx        sdl.GLContext
	keymap     Keymap
	fullscreen bool
	log        *zap.Logger
}

// New opens the window and makes its GL context current.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:     cfg,
		keymap:     DefaultKeymap(),
		fullscreen: cfg.Fullscreen,
		log:        logger.Named("window"),
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}
	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("SDL_GL_SetAttribute(%d): %w", a.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE) | fullscreenFlags(cfg.Fullscreen)

	var err error
	w.win, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}
	if cfg.MinWidth > 0 && cfg.MinHeight > 0 {
		w.win.SetMinimumSize(int32(cfg.MinWidth), int32(cfg.MinHeight))
	}

	if w.ctx, err = w.win.GLCreateContext(); err != nil {
		w.win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}

	dw, dh := w.GetSize()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close destroys the context and window and shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// GetSize returns the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) GetSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// SetKeymap replaces the keyboard bindings.
func (w *Window) SetKeymap(km Keymap) {
	w.keymap = km
}

// ToggleFullscreen switches between a desktop-sized borderless window and
// the windowed size.
func (w *Window) ToggleFullscreen() error {
	if err := w.win.SetFullscreen(fullscreenFlags(!w.fullscreen)); err != nil {
		return fmt.Errorf("SDL_SetWindowFullscreen failed: %w", err)
	}
	w.fullscreen = !w.fullscreen
	w.log.Debug("fullscreen toggled", zap.Bool("fullscreen", w.fullscreen))
	return nil
}

func fullscreenFlags(on bool) uint32 {
	if on {
		return sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return 0
}
