package systems

import (
	"math/rand/v2"
	"sync"
)

// Randomizer is the random source shared by every animal on a field:
// age initialisation, breeding decisions, litter sizes and adjacency order.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// SharedSeed seeds the process-wide randomizer.
const SharedSeed = 1111

var (
	sharedOnce sync.Once
	sharedRNG  *rand.Rand
)

// NewRandomizer returns a deterministic source for the given seed.
func NewRandomizer(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// SharedRandomizer returns the lazily created process-wide source.
// Prefer threading an explicit Randomizer; this exists for callers that
// have no seed of their own.
func SharedRandomizer() *rand.Rand {
	sharedOnce.Do(func() {
		sharedRNG = NewRandomizer(SharedSeed)
	})
	return sharedRNG
}
