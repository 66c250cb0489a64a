package atlas

import "fmt"

// Rect is an integer rectangle in frame coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.W >= 0 && other.H >= 0 &&
		other.X+other.W <= r.X+r.W &&
		other.Y+other.H <= r.Y+r.H
}

// String returns "WxH+X+Y".
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}
