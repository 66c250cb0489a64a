package input

import (
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Replay file layout, protobuf wire format:
//
//	1: version (varint)
//	2: step (bytes, repeated) { 1: held (varint), 2: ticks (varint) }
const (
	replayVersion = 1

	fieldVersion protowire.Number = 1
	fieldStep    protowire.Number = 2
	fieldHeld    protowire.Number = 1
	fieldTicks   protowire.Number = 2
)

// Recording accumulates held sets tick by tick, merging runs of equal sets.
type Recording struct {
	steps []Step
}

// Record appends one tick.
func (r *Recording) Record(held Buttons) {
	if n := len(r.steps); n > 0 && r.steps[n-1].Held == held {
		r.steps[n-1].Ticks++
		return
	}
	r.steps = append(r.steps, Step{Held: held, Ticks: 1})
}

// Steps returns the recorded steps.
func (r *Recording) Steps() []Step {
	return r.steps
}

// Script returns a script that replays the recording from the start.
func (r *Recording) Script() *Script {
	return NewScript(append([]Step(nil), r.steps...)...)
}

// String formats the recording in ParseScript syntax.
func (r *Recording) String() string {
	parts := make([]string, len(r.steps))
	for i, st := range r.steps {
		parts[i] = st.Held.String()
		if st.Ticks > 1 {
			parts[i] += fmt.Sprintf("*%d", st.Ticks)
		}
	}
	return strings.Join(parts, ",")
}

// MarshalBinary encodes the recording.
func (r *Recording) MarshalBinary() ([]byte, error) {
	b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, replayVersion)

	var msg []byte
	for _, st := range r.steps {
		msg = msg[:0]
		msg = protowire.AppendTag(msg, fieldHeld, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(st.Held))
		msg = protowire.AppendTag(msg, fieldTicks, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(st.Ticks))

		b = protowire.AppendTag(b, fieldStep, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b, nil
}

// UnmarshalBinary replaces the recording with the decoded data. Unknown
// fields are skipped.
func (r *Recording) UnmarshalBinary(data []byte) error {
	var steps []Step
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
			}
			if v != replayVersion {
				return fmt.Errorf("%w: replay version %d", ErrScript, v)
			}
			data = data[n:]
		case num == fieldStep && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
			}
			st, err := decodeStep(msg)
			if err != nil {
				return err
			}
			steps = append(steps, st)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	r.steps = steps
	return nil
}

func decodeStep(msg []byte) (Step, error) {
	var st Step
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return st, fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
		}
		msg = msg[n:]

		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, msg)
			if n < 0 {
				return st, fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
			}
			msg = msg[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(msg)
		if n < 0 {
			return st, fmt.Errorf("%w: %v", ErrScript, protowire.ParseError(n))
		}
		msg = msg[n:]

		switch num {
		case fieldHeld:
			st.Held = Buttons(v)
		case fieldTicks:
			st.Ticks = int(v)
		}
	}
	if st.Ticks <= 0 {
		return st, fmt.Errorf("%w: step without ticks", ErrScript)
	}
	return st, nil
}

// WriteTo writes the encoded recording to w.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	b, _ := r.MarshalBinary()
	n, err := w.Write(b)
	return int64(n), err
}

// SaveRecording writes r to path.
func SaveRecording(path string, r *Recording) error {
	b, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// LoadReplay reads a recording from path and returns it as a script.
func LoadReplay(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Recording
	if err := r.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r.Script(), nil
}
