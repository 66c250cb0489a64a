package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrScript is returned for malformed input scripts.
var ErrScript = errors.New("invalid input script")

// Step holds a button set for a number of ticks.
type Step struct {
	Held  Buttons
	Ticks int
}

// Script replays a fixed held-button sequence, one set per tick.
type Script struct {
	steps []Step
	step  int
	tick  int
}

// NewScript creates a script from steps.
func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// ParseScript reads a comma separated list of steps. Each step is a "+"
// joined button list, optionally followed by "*N" to hold it for N ticks:
//
//	right*10,right+a,none*20
func ParseScript(src string) (*Script, error) {
	var steps []Step
	for _, field := range strings.Split(src, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		ticks := 1
		if name, count, ok := strings.Cut(field, "*"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: bad repeat in %q", ErrScript, field)
			}
			field, ticks = strings.TrimSpace(name), n
		}

		held, err := ParseButtons(field)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Held: held, Ticks: ticks})
	}
	return NewScript(steps...), nil
}

// ParseButtons parses a "+" joined button list such as "left+a".
func ParseButtons(s string) (Buttons, error) {
	var held Buttons
	for _, part := range strings.Split(s, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "none" || part == "-" {
			continue
		}
		found := false
		for _, bn := range buttonNames {
			if bn.name == part {
				held |= bn.b
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("%w: unknown button %q", ErrScript, part)
		}
	}
	return held, nil
}

// Next returns the held set for the next tick. Once the script is exhausted
// it returns None and false.
func (s *Script) Next() (Buttons, bool) {
	for s.step < len(s.steps) {
		st := s.steps[s.step]
		if s.tick < st.Ticks {
			s.tick++
			return st.Held, true
		}
		s.step++
		s.tick = 0
	}
	return None, false
}

// Len returns the total number of ticks in the script.
func (s *Script) Len() int {
	n := 0
	for _, st := range s.steps {
		n += st.Ticks
	}
	return n
}

// Rewind restarts the script from the first step.
func (s *Script) Rewind() {
	s.step, s.tick = 0, 0
}
