package evo

import (
	"math/rand"

	"keyopt/internal/model"
)

// Operator transforms one or two parent layouts into a new layout, always
// preserving the permutation invariant: every character of the parent
// alphabet appears exactly once in the result.
type Operator interface {
	Name() string
}

// Crossover combines two parent layouts into a child layout.
type Crossover interface {
	Operator
	Cross(rng *rand.Rand, a, b model.Layout) (model.Layout, error)
}

// Mutation perturbs a single layout, conditioned on its own probability. It
// returns a new layout when it fires and leaves its input unchanged.
type Mutation interface {
	Operator
	Mutate(rng *rand.Rand, layout model.Layout, rate float64) (model.Layout, error)
}
