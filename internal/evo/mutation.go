package evo

import (
	"math/rand"

	"keyopt/internal/model"
)

// SwapMutation exchanges two uniformly chosen positions with probability
// rate.
type SwapMutation struct{}

func (SwapMutation) Name() string { return "swap" }

func (SwapMutation) Mutate(rng *rand.Rand, layout model.Layout, rate float64) (model.Layout, error) {
	if rng.Float64() >= rate {
		return layout, nil
	}
	out := layout.Clone()
	i := rng.Intn(len(out))
	j := rng.Intn(len(out))
	out[i], out[j] = out[j], out[i]
	return out, nil
}

// ScrambleMutation picks a random start and shuffles the next up-to-3
// positions in place, with probability rate.
type ScrambleMutation struct{}

func (ScrambleMutation) Name() string { return "scramble" }

func (ScrambleMutation) Mutate(rng *rand.Rand, layout model.Layout, rate float64) (model.Layout, error) {
	if rng.Float64() >= rate {
		return layout, nil
	}
	out := layout.Clone()
	n := len(out)
	span := 1 + rng.Intn(3)
	if span > n {
		span = n
	}
	start := rng.Intn(n)
	idx := make([]int, span)
	for s := 0; s < span; s++ {
		idx[s] = (start + s) % n
	}
	for s := len(idx) - 1; s > 0; s-- {
		t := rng.Intn(s + 1)
		out[idx[s]], out[idx[t]] = out[idx[t]], out[idx[s]]
	}
	return out, nil
}

// InversionMutation reverses the subrange between two chosen positions,
// inclusive, with probability rate.
type InversionMutation struct{}

func (InversionMutation) Name() string { return "inversion" }

func (InversionMutation) Mutate(rng *rand.Rand, layout model.Layout, rate float64) (model.Layout, error) {
	if rng.Float64() >= rate {
		return layout, nil
	}
	out := layout.Clone()
	start := rng.Intn(len(out))
	end := rng.Intn(len(out))
	if start > end {
		start, end = end, start
	}
	for start < end {
		out[start], out[end] = out[end], out[start]
		start++
		end--
	}
	return out, nil
}
