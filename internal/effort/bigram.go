package effort

import (
	"math"

	"keyopt/internal/geometry"
)

// SameFinger is the penalty for typing two keys in sequence with the same
// finger. Same-finger repeats of the same key contribute zero.
func SameFinger(prev, curr geometry.Key) float64 {
	if prev.Row == curr.Row && prev.Column == curr.Column {
		return 0
	}
	rowDist := float64(curr.Row - prev.Row)
	colDist := float64(curr.Column - prev.Column)
	dist := math.Sqrt(rowDist*rowDist + colDist*colDist)
	return 3.0 + 2.0*dist
}

// SameHandRoll is the penalty for two same-hand keystrokes on different
// fingers: an inward roll (index-to-pinky direction) is cheaper than an
// outward one.
func SameHandRoll(prev, curr geometry.Key) float64 {
	isLeft := prev.Hand == geometry.HandLeft
	dir := curr.Finger - prev.Finger
	// Inward is the index-to-pinky direction: decreasing finger index on
	// the left hand, increasing on the right.
	inward := (isLeft && dir < 0) || (!isLeft && dir > 0)
	if inward {
		return 0.5
	}
	return 1.2
}

// RowChange is the penalty for a same-hand row change between two keys.
func RowChange(prev, curr geometry.Key) float64 {
	d := curr.Row - prev.Row
	if d < 0 {
		d = -d
	}
	switch {
	case d == 0:
		return 0
	case d == 1:
		return 0.3
	default:
		return 0.6 * float64(d)
	}
}
