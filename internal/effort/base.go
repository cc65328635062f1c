// Package effort implements the deterministic biomechanical effort model:
// base key cost, same-finger and same-hand bigram penalties, row-change
// penalty, and same-hand trigram penalty, plus the top-level evaluator that
// sums them weighted by character and n-gram frequency.
package effort

import (
	"math"

	"keyopt/internal/geometry"
)

// RowPenalty is the relative difficulty of reaching a row. Home row (2) is
// strongly preferred; the number row (0) is hardest.
func RowPenalty(row int) float64 {
	switch row {
	case 0:
		return 3.0
	case 1:
		return 1.2
	case 2:
		return 0.5
	case 3:
		return 2.0
	default:
		return 2.5
	}
}

// FingerPenalty is the relative weakness of a finger. Pinkies are weakest,
// index fingers strongest.
func FingerPenalty(finger int) float64 {
	switch finger {
	case geometry.FingerLeftPinky, geometry.FingerRightPinky:
		return 2.2
	case geometry.FingerLeftRing, geometry.FingerRightRing:
		return 1.4
	case geometry.FingerLeftMiddle, geometry.FingerRightMiddle:
		return 1.0
	case geometry.FingerLeftIndex, geometry.FingerRightIndex:
		return 0.85
	default:
		return 1.5
	}
}

// HomeDistance is the 30%-per-zone surcharge for a key's distance from its
// finger's home-zone center, in normalized x.
func HomeDistance(relX float64, finger int) float64 {
	dist := math.Abs(relX - geometry.HomeCenter(finger))
	return 1.0 + 0.3*(dist/0.25)
}

// BaseKey is the static cost of placing a character on key i.
func BaseKey(k geometry.Key) float64 {
	return RowPenalty(k.Row) * FingerPenalty(k.Finger) * HomeDistance(k.XMidNormalized, k.Finger)
}
