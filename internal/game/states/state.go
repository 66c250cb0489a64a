// Package states implements game state management.
package states

import (
	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/internal/engine/input"
)

// State represents a game state (playing, paused).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every tick with that tick's input.
	Update(in input.Snapshot, dt float32) error

	// Render is called every tick to draw the state.
	Render(fb *display.Framebuffer) error

	// Name identifies the state in logs.
	Name() string
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the start of the next update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(in input.Snapshot, dt float32) error {
	// Handle state transition
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(in, dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render(fb *display.Framebuffer) error {
	if m.current != nil {
		return m.current.Render(fb)
	}
	return nil
}
