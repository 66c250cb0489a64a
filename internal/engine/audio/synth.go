package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Tone is a square-wave blip sweeping linearly from Start to End Hz with a
// linear fade out, the kind of sound a handheld buzzer makes.
type Tone struct {
	Start    float64
	End      float64
	Duration time.Duration
	Duty     float64
}

// Default blips for each effect.
var defaultTones = map[Effect]Tone{
	EffectJump: {Start: 330, End: 880, Duration: 120 * time.Millisecond, Duty: 0.5},
	EffectLand: {Start: 220, End: 110, Duration: 60 * time.Millisecond, Duty: 0.25},
}

// Synthesize renders t into a replayable buffer.
func Synthesize(sr beep.SampleRate, t Tone) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(t.streamer(sr))
	return buf
}

func (t Tone) streamer(sr beep.SampleRate) beep.Streamer {
	total := sr.N(t.Duration)
	duty := t.Duty
	if duty <= 0 || duty >= 1 {
		duty = 0.5
	}

	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			progress := float64(pos) / float64(total)
			freq := t.Start + (t.End-t.Start)*progress

			v := 1.0
			if phase >= duty {
				v = -1.0
			}
			v *= 1 - progress

			samples[i][0] = v
			samples[i][1] = v

			phase += freq / float64(sr)
			for phase >= 1 {
				phase--
			}
			pos++
		}
		return len(samples), true
	})
}
