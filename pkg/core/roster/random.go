package roster

import (
	"math/rand"
	"time"
)

// Rand is the pseudo-random source used for tie-breaks, shuffles and genetic operators.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source for the given seed
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// AttemptSeed returns the seed used by attempt i of a run seeded with base
func AttemptSeed(base int64, i int) int64 {
	return base + int64(i)
}

// resolveSeed returns the configured seed, or a time based one when unset
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	seed = time.Now().UnixNano()
	if seed == 0 {
		seed = 1
	}
	return seed
}
