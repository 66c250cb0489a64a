package palette

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ShadeFactor is the per-step darkening used by Tint.
const ShadeFactor = 0.8

// Shade scales each channel of c by factor, truncating toward zero.
// Factors outside [0, 1] are clamped.
func Shade(c uint16, factor float32) uint16 {
	if factor <= 0 {
		return 0
	}
	if factor >= 1 {
		return c
	}
	r, g, b := Channels(c)
	return Pack(
		uint8(math32.Floor(factor*float32(r))),
		uint8(math32.Floor(factor*float32(g))),
		uint8(math32.Floor(factor*float32(b))),
	)
}

// Tint returns a copy of p with a three-step ramp of base written into the
// dark, mid and light slots: base*0.64, base*0.8 and base.
func Tint(p Palette, base uint16, dark, mid, light int) Palette {
	m := Shade(base, ShadeFactor)
	p[dark%Size] = Shade(m, ShadeFactor)
	p[mid%Size] = m
	p[light%Size] = base
	return p
}

// Pulser produces a smooth 0..1..0 oscillation, used to animate a single
// palette slot (a glowing background, a blinking pickup).
type Pulser struct {
	tween  *gween.Tween
	half   float32
	rising bool
	level  float32
}

// NewPulser creates a pulser with the given full period in seconds.
func NewPulser(period float32) *Pulser {
	half := period / 2
	return &Pulser{
		tween:  gween.New(0, 1, half, ease.InOutSine),
		half:   half,
		rising: true,
	}
}

// Update advances the oscillation by dt seconds and returns the new level.
func (p *Pulser) Update(dt float32) float32 {
	v, done := p.tween.Update(dt)
	p.level = v
	if done {
		p.rising = !p.rising
		if p.rising {
			p.tween = gween.New(0, 1, p.half, ease.InOutSine)
		} else {
			p.tween = gween.New(1, 0, p.half, ease.InOutSine)
		}
	}
	return v
}

// Level returns the current oscillation level in [0, 1].
func (p *Pulser) Level() float32 {
	return p.level
}

// Apply returns base shaded by the current level.
func (p *Pulser) Apply(base uint16) uint16 {
	return Shade(base, p.level)
}
