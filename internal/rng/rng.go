// Package rng provides the random source shared by the challenge generators.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the generators draw from.
// Tests inject a seeded source to make generation deterministic.
type Source interface {
	// IntN returns a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int

	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

// New returns a Source seeded with the given value.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeeded returns a Source seeded from the wall clock.
func NewTimeSeeded() Source {
	return New(uint64(time.Now().UnixNano()))
}

// Between returns a uniform int in [lo, hi]. Both bounds are inclusive.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen index into a slice of length n.
func Pick(src Source, n int) int {
	return src.IntN(n)
}
