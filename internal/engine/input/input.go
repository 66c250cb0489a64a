// Package input turns per-tick button states into snapshots with edge
// detection. Polling the hardware is done by the window package.
package input

import "strings"

// Buttons is a set of handheld buttons.
type Buttons uint8

// Handheld buttons.
const (
	Left Buttons = 1 << iota
	Right
	Up
	Down
	A
	B
	Menu

	None Buttons = 0
)

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{Left, "left"},
	{Right, "right"},
	{Up, "up"},
	{Down, "down"},
	{A, "a"},
	{B, "b"},
	{Menu, "menu"},
}

// Has reports whether any button in b is in the set.
func (s Buttons) Has(b Buttons) bool {
	return s&b != 0
}

// String returns the buttons joined with "+", or "none".
func (s Buttons) String() string {
	if s == None {
		return "none"
	}
	var parts []string
	for _, bn := range buttonNames {
		if s&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "+")
}

// Snapshot is the input state for one tick.
type Snapshot struct {
	held     Buttons
	pressed  Buttons
	released Buttons
}

// NewSnapshot builds a snapshot from explicit sets.
func NewSnapshot(held, pressed, released Buttons) Snapshot {
	return Snapshot{held: held, pressed: pressed, released: released}
}

// Held reports whether any of b is down this tick.
func (s Snapshot) Held(b Buttons) bool {
	return s.held.Has(b)
}

// Pressed reports whether any of b went down this tick.
func (s Snapshot) Pressed(b Buttons) bool {
	return s.pressed.Has(b)
}

// Released reports whether any of b went up this tick.
func (s Snapshot) Released(b Buttons) bool {
	return s.released.Has(b)
}

// Buttons returns the held set.
func (s Snapshot) Buttons() Buttons {
	return s.held
}

// WithReleased returns a copy of s that also reports b as released.
func (s Snapshot) WithReleased(b Buttons) Snapshot {
	s.released |= b
	return s
}

// Tracker derives press and release edges from consecutive held states.
type Tracker struct {
	prev Buttons
}

// Next records the held set for this tick and returns its snapshot.
func (t *Tracker) Next(held Buttons) Snapshot {
	s := Snapshot{
		held:     held,
		pressed:  held &^ t.prev,
		released: t.prev &^ held,
	}
	t.prev = held
	return s
}

// Reset forgets the previous tick, so held buttons report as pressed again.
func (t *Tracker) Reset() {
	t.prev = None
}
