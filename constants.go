package genetic_route

import (
	"math/rand"
	"time"
)

const (
	MinNodeCount  = 1
	MinPathsCount = 2
	// Start, end and at least two interior genes.
	MinPathLength = 4

	// One path in ten (rounded up) is mutated every generation.
	MutationDivisor = 10
)

// Rand is the random source every stochastic operation draws from.
// *rand.Rand satisfies it. Draw order is part of the contract: the same
// seed and the same configuration always evolve the same run.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// ResolveSeed returns seed, or the current time when seed is 0. A non-zero
// seed gives reproducible results.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewRand returns a generator for one run. Generators are not safe for
// concurrent use, so every run gets its own.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}

// randint returns a uniform integer in [lo, hi], both ends inclusive.
func randint(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
