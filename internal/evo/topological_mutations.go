package evo

import (
	"math/rand"

	"keyopt/internal/model"
)

// MutationSchedule applies a fixed sequence of mutation operators to a
// child layout, each conditioned on its own probability derived from a
// single base mutation rate.
type MutationSchedule interface {
	Name() string
	Apply(rng *rand.Rand, layout model.Layout, baseRate float64) (model.Layout, error)
}

// DefaultMutationSchedule applies swap at the base rate, scramble at 0.3 of
// the base rate, and inversion at 0.2 of the base rate, in that order, per
// child.
type DefaultMutationSchedule struct{}

func (DefaultMutationSchedule) Name() string { return "default" }

func (DefaultMutationSchedule) Apply(rng *rand.Rand, layout model.Layout, baseRate float64) (model.Layout, error) {
	out, err := SwapMutation{}.Mutate(rng, layout, baseRate)
	if err != nil {
		return nil, err
	}
	out, err = ScrambleMutation{}.Mutate(rng, out, 0.3*baseRate)
	if err != nil {
		return nil, err
	}
	out, err = InversionMutation{}.Mutate(rng, out, 0.2*baseRate)
	if err != nil {
		return nil, err
	}
	return out, nil
}
