package atlas

// Animator is a per-user frame cursor over a shared atlas. Frames before the
// atlas loop start play once; afterwards the cursor cycles through
// [LoopStart, FrameCount).
type Animator struct {
	atlas *Atlas
	frame int
}

// NewAnimator creates a cursor positioned on frame 0.
func NewAnimator(a *Atlas) *Animator {
	return &Animator{atlas: a}
}

// Atlas returns the animated atlas.
func (an *Animator) Atlas() *Atlas {
	return an.atlas
}

// Frame returns the current frame index.
func (an *Animator) Frame() int {
	return an.frame
}

// Tick advances the cursor by one frame.
func (an *Animator) Tick() {
	an.frame++
	if an.frame >= an.atlas.FrameCount() {
		an.frame = an.atlas.LoopStart()
	}
}

// Reset rewinds the cursor to frame 0.
func (an *Animator) Reset() {
	an.frame = 0
}
