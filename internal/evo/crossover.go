package evo

import (
	"fmt"
	"math/rand"

	"keyopt/internal/model"
)

// OrderCrossover copies a contiguous segment from parent a unchanged, then
// fills the remaining positions in cyclic order with parent b's characters
// that are not already present, starting just past the copied segment.
type OrderCrossover struct{}

func (OrderCrossover) Name() string { return "order_crossover" }

func (OrderCrossover) Cross(rng *rand.Rand, a, b model.Layout) (model.Layout, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("evo: order crossover requires equal-length, nonempty parents")
	}

	i := rng.Intn(n)
	j := rng.Intn(n)
	if i > j {
		i, j = j, i
	}

	child := make(model.Layout, n)
	present := make(map[rune]bool, n)
	for p := i; p <= j; p++ {
		child[p] = a[p]
		present[a[p]] = true
	}

	filled := make([]bool, n)
	for p := i; p <= j; p++ {
		filled[p] = true
	}

	pos := (j + 1) % n
	for k := 0; k < n; k++ {
		c := b[(j+1+k)%n]
		if present[c] {
			continue
		}
		for filled[pos] {
			pos = (pos + 1) % n
		}
		child[pos] = c
		filled[pos] = true
		present[c] = true
	}

	return child, nil
}

// PartiallyMappedCrossover copies a contiguous segment from parent a and
// records the A<->B pairwise mapping for that segment. Positions outside
// the segment take parent b's character at the same index, following the
// mapping chain whenever that character already appears in the copied
// segment.
type PartiallyMappedCrossover struct{}

func (PartiallyMappedCrossover) Name() string { return "pmx" }

func (PartiallyMappedCrossover) Cross(rng *rand.Rand, a, b model.Layout) (model.Layout, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, fmt.Errorf("evo: pmx requires equal-length, nonempty parents")
	}

	i := rng.Intn(n)
	j := rng.Intn(n)
	if i > j {
		i, j = j, i
	}

	child := make(model.Layout, n)
	inSegment := make(map[rune]bool, j-i+1)
	aToB := make(map[rune]rune, j-i+1)
	for p := i; p <= j; p++ {
		child[p] = a[p]
		inSegment[a[p]] = true
		aToB[a[p]] = b[p]
	}

	for p := 0; p < n; p++ {
		if p >= i && p <= j {
			continue
		}
		c := b[p]
		for inSegment[c] {
			mapped, ok := aToB[c]
			if !ok {
				break
			}
			c = mapped
		}
		child[p] = c
	}

	return child, nil
}
