// Package clock paces the game loop at a fixed tick rate.
package clock

import (
	"context"
	"time"
)

// DefaultFPS is the handheld's frame rate.
const DefaultFPS = 32

// Ticker delivers ticks at a fixed rate. Ticks missed while the caller was
// busy are dropped, so a slow frame delays the next one instead of queuing.
type Ticker struct {
	interval time.Duration
	ticker   *time.Ticker
	frame    uint64

	// FPS measurement
	fpsCount int
	fpsStart time.Time
	fps      float64
}

// New creates a ticker running at fps ticks per second.
func New(fps int) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return &Ticker{
		interval: interval,
		ticker:   time.NewTicker(interval),
		fpsStart: time.Now(),
	}
}

// Wait blocks until the next tick.
func (t *Ticker) Wait() {
	<-t.ticker.C
	t.advance()
}

// WaitContext blocks until the next tick or until ctx is done.
func (t *Ticker) WaitContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		t.advance()
		return nil
	}
}

func (t *Ticker) advance() {
	t.frame++
	t.fpsCount++
	if elapsed := time.Since(t.fpsStart); elapsed >= time.Second {
		t.fps = float64(t.fpsCount) / elapsed.Seconds()
		t.fpsCount = 0
		t.fpsStart = time.Now()
	}
}

// Frame returns the number of ticks waited so far.
func (t *Ticker) Frame() uint64 {
	return t.frame
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// DeltaSeconds returns the tick period in seconds, the fixed timestep used
// by time-based effects.
func (t *Ticker) DeltaSeconds() float32 {
	return float32(t.interval.Seconds())
}

// FPS returns the rate measured over the last full second.
func (t *Ticker) FPS() float64 {
	return t.fps
}

// Stop releases the underlying timer.
func (t *Ticker) Stop() {
	t.ticker.Stop()
}
