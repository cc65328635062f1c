// Package geometry precomputes, from raw key positions, each key's finger
// assignment, hand, and normalized x-position. The derivation is pure and
// deterministic: the same positions always produce the same index.
package geometry

import (
	"fmt"

	"keyopt/internal/model"
)

// Finger indices, left pinky to right pinky. Thumbs (4, 5) are unused for
// letter keys in this model.
const (
	FingerLeftPinky   = 0
	FingerLeftRing    = 1
	FingerLeftMiddle  = 2
	FingerLeftIndex   = 3
	FingerRightIndex  = 6
	FingerRightMiddle = 7
	FingerRightRing   = 8
	FingerRightPinky  = 9
)

const (
	HandLeft  = 0
	HandRight = 1
)

// Key is the derived, immutable geometry of one key index.
type Key struct {
	model.KeyPosition
	Finger        int
	Hand          int
	XMidNormalized float64
}

// Index is the precomputed geometry for a full key set, keyed by the same
// 0..n-1 index order the caller supplied.
type Index struct {
	Keys []Key
}

// homeCenterLeft and homeCenterRight hold the home-zone centers, in
// normalized x: left pinky to left index, then right index to right pinky.
var homeCenterLeft = []float64{-0.875, -0.625, -0.375, -0.125}
var homeCenterRight = []float64{0.125, 0.375, 0.625, 0.875}

// Build computes the derived geometry for n keys from their raw positions.
// positions must be nonempty and must not all share the same x.
func Build(positions []model.KeyPosition) (Index, error) {
	n := len(positions)
	if n == 0 {
		return Index{}, fmt.Errorf("geometry: no key positions supplied")
	}

	minX, maxX := positions[0].X, positions[0].X
	for _, p := range positions[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}
	halfWidth := (maxX - minX) / 2.0
	if halfWidth == 0 {
		return Index{}, fmt.Errorf("geometry: key positions have zero horizontal spread")
	}
	center := (minX + maxX) / 2.0

	keys := make([]Key, n)
	for i, p := range positions {
		relX := (p.X - center) / halfWidth
		hand := HandLeft
		if relX >= 0 {
			hand = HandRight
		}
		finger := fingerAt(relX)
		keys[i] = Key{
			KeyPosition:    p,
			Finger:         finger,
			Hand:           hand,
			XMidNormalized: relX,
		}
	}
	return Index{Keys: keys}, nil
}

// fingerAt maps a normalized x-position in [-1, +1] to a finger index,
// splitting each hand's half of the keyboard into four equal zones.
func fingerAt(relX float64) int {
	if relX < 0 {
		abs := -relX
		switch {
		case abs > 0.75:
			return FingerLeftPinky
		case abs > 0.50:
			return FingerLeftRing
		case abs > 0.25:
			return FingerLeftMiddle
		default:
			return FingerLeftIndex
		}
	}
	switch {
	case relX < 0.25:
		return FingerRightIndex
	case relX < 0.50:
		return FingerRightMiddle
	case relX < 0.75:
		return FingerRightRing
	default:
		return FingerRightPinky
	}
}

// HomeCenter returns the home-zone center, in normalized x, for a finger.
func HomeCenter(finger int) float64 {
	switch finger {
	case FingerLeftPinky:
		return homeCenterLeft[0]
	case FingerLeftRing:
		return homeCenterLeft[1]
	case FingerLeftMiddle:
		return homeCenterLeft[2]
	case FingerLeftIndex:
		return homeCenterLeft[3]
	case FingerRightIndex:
		return homeCenterRight[0]
	case FingerRightMiddle:
		return homeCenterRight[1]
	case FingerRightRing:
		return homeCenterRight[2]
	case FingerRightPinky:
		return homeCenterRight[3]
	default:
		return 0
	}
}
