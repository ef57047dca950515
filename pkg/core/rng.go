// Package core holds small helpers shared by the simulations.
package core

import "math/rand/v2"

// RNG is a seeded PCG stream. Two RNGs built from the same seed produce the
// same draws, which keeps runs reproducible.
type RNG struct {
	r     *rand.Rand
	seed  int64
	draws uint64
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (r *RNG) IntN(n int) int {
	r.draws++
	return r.r.IntN(n)
}

// Seed returns the seed the stream was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Draws counts IntN calls since creation.
func (r *RNG) Draws() uint64 { return r.draws }
