package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/pocketsprite/internal/engine/input"
)

// Keymap binds keyboard scancodes to handheld buttons.
type Keymap map[sdl.Scancode]input.Buttons

// DefaultKeymap maps arrows and WASD to the d-pad, Z/Space/J to A, X/K to
// B and Enter to Menu.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.SCANCODE_LEFT:   input.Left,
		sdl.SCANCODE_A:      input.Left,
		sdl.SCANCODE_RIGHT:  input.Right,
		sdl.SCANCODE_D:      input.Right,
		sdl.SCANCODE_UP:     input.Up,
		sdl.SCANCODE_W:      input.Up,
		sdl.SCANCODE_DOWN:   input.Down,
		sdl.SCANCODE_S:      input.Down,
		sdl.SCANCODE_Z:      input.A,
		sdl.SCANCODE_SPACE:  input.A,
		sdl.SCANCODE_J:      input.A,
		sdl.SCANCODE_X:      input.B,
		sdl.SCANCODE_K:      input.B,
		sdl.SCANCODE_RETURN: input.Menu,
	}
}

// Events summarizes one poll of the SDL event queue.
type Events struct {
	Quit       bool
	Resized    bool
	Width      int
	Height     int
	Screenshot bool
	Fullscreen bool // toggle requested
	Held       input.Buttons
}

// Poll drains pending SDL events and samples the keyboard. Escape and
// closing the window request quit, F11 toggles fullscreen and F12 requests a
// screenshot.
func (w *Window) Poll() Events {
	var ev Events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				ev.Resized = true
				ev.Width, ev.Height = w.GetSize()
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				ev.hotkey(e.Keysym.Scancode)
			}
		}
	}

	ev.Held = w.keymap.Sample(sdl.GetKeyboardState())
	return ev
}

func (ev *Events) hotkey(code sdl.Scancode) {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		ev.Quit = true
	case sdl.SCANCODE_F11:
		ev.Fullscreen = true
	case sdl.SCANCODE_F12:
		ev.Screenshot = true
	}
}

// Sample returns the buttons whose keys are down in state, a keyboard
// snapshot indexed by scancode.
func (k Keymap) Sample(state []uint8) input.Buttons {
	var held input.Buttons
	for code, b := range k {
		if int(code) < len(state) && state[code] != 0 {
			held |= b
		}
	}
	return held
}
