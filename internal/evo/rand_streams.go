package evo

import "math/rand"

// childRand returns the random source for one child slot within one
// generation, deterministically derived from the run's master seed. Keying
// by (generation, slot) rather than by worker id means the result for a
// given slot is independent of which goroutine happens to process it, so a
// run with a fixed master seed reproduces bit-identical output regardless
// of worker-pool scheduling, per spec.md §5 and testable property #6.
func childRand(masterSeed int64, generation, slot int) *rand.Rand {
	seed := masterSeed ^ (int64(generation) << 32) ^ int64(slot)
	return rand.New(rand.NewSource(seed))
}
