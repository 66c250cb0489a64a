package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/pocketsprite/internal/engine/input"
)

func TestKeymap_Sample(t *testing.T) {
	state := make([]uint8, sdl.NUM_SCANCODES)
	km := DefaultKeymap()

	if got := km.Sample(state); got != input.None {
		t.Errorf("no keys down: got %v", got)
	}

	state[sdl.SCANCODE_D] = 1
	state[sdl.SCANCODE_SPACE] = 1
	state[sdl.SCANCODE_RETURN] = 1
	state[sdl.SCANCODE_Q] = 1 // unbound
	if got, want := km.Sample(state), input.Right|input.A|input.Menu; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Scancodes past a short snapshot are ignored.
	if got := km.Sample(state[:sdl.SCANCODE_D]); got != input.None {
		t.Errorf("short state: got %v", got)
	}
}

func TestEvents_Hotkey(t *testing.T) {
	tests := []struct {
		code sdl.Scancode
		want Events
	}{
		{sdl.SCANCODE_ESCAPE, Events{Quit: true}},
		{sdl.SCANCODE_F11, Events{Fullscreen: true}},
		{sdl.SCANCODE_F12, Events{Screenshot: true}},
		{sdl.SCANCODE_LEFT, Events{}},
	}

	for _, tt := range tests {
		var ev Events
		ev.hotkey(tt.code)
		if ev != tt.want {
			t.Errorf("scancode %d: got %+v, want %+v", tt.code, ev, tt.want)
		}
	}
}

func TestFullscreenFlags(t *testing.T) {
	if got := fullscreenFlags(true); got != sdl.WINDOW_FULLSCREEN_DESKTOP {
		t.Errorf("on: got %#x", got)
	}
	if got := fullscreenFlags(false); got != 0 {
		t.Errorf("off: got %#x", got)
	}
}
