package geometry

import (
	"fmt"

	"keyopt/internal/model"
)

// ANSI30 is the 10-column x 3-row grid used throughout the concrete test
// scenarios: row 1 (top) staggered +0.25 units right, row 3 (bottom)
// staggered -0.25 units right, row 2 (home) unstaggered, matching a
// standard ANSI physical stagger. Keys are ordered row-major: row 1
// columns 0-9, then row 2 columns 0-9, then row 3 columns 0-9.
func ANSI30() []model.KeyPosition {
	return buildGrid(0.25, -0.25)
}

// Ortholinear30 is the same 30-key grid with zero row stagger.
func Ortholinear30() []model.KeyPosition {
	return buildGrid(0, 0)
}

// Preset resolves a geometry preset by name, for CLI and config flags that
// name a physical layout rather than embedding raw key positions.
func Preset(name string) ([]model.KeyPosition, error) {
	switch name {
	case "", "ansi30":
		return ANSI30(), nil
	case "ortholinear30":
		return Ortholinear30(), nil
	default:
		return nil, fmt.Errorf("geometry: unknown preset %q", name)
	}
}

func buildGrid(topStagger, bottomStagger float64) []model.KeyPosition {
	rows := []struct {
		row     int
		y       float64
		stagger float64
	}{
		{row: 1, y: 2, stagger: topStagger},
		{row: 2, y: 1, stagger: 0},
		{row: 3, y: 0, stagger: bottomStagger},
	}
	positions := make([]model.KeyPosition, 0, 30)
	for _, r := range rows {
		for col := 0; col < 10; col++ {
			positions = append(positions, model.KeyPosition{
				X:      float64(col) + r.stagger,
				Y:      r.y,
				Row:    r.row,
				Column: col,
			})
		}
	}
	return positions
}
