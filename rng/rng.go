// Package rng provides the seeded random number handle shared by every map
// generator. A handle is not safe for concurrent use; give each goroutine
// its own instance.
package rng

import (
	"math/rand"
	"time"
)

// RandomNumberGenerator wraps a reseedable *rand.Rand with the dice-style
// helpers the generators need
type RandomNumberGenerator struct {
	rng  *rand.Rand
	seed int64
}

// New creates a generator seeded with seed
func New(seed int64) *RandomNumberGenerator {
	return &RandomNumberGenerator{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewFromTime creates a generator seeded from the wall clock
func NewFromTime() *RandomNumberGenerator {
	return New(time.Now().UnixNano())
}

// Reseed restarts the stream from seed
func (g *RandomNumberGenerator) Reseed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.seed = seed
}

// Seed returns the seed the current stream started from
func (g *RandomNumberGenerator) Seed() int64 {
	return g.seed
}

// Range returns a uniformly distributed integer in [min, max].
// If max < min the bounds are swapped.
func (g *RandomNumberGenerator) Range(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + g.rng.Intn(max-min+1)
}

// Intn returns a value in [0, n). n must be > 0.
func (g *RandomNumberGenerator) Intn(n int) int {
	return g.rng.Intn(n)
}

// Roll rolls n dice with the given number of sides and sums them
func (g *RandomNumberGenerator) Roll(n, sides int) int {
	if n <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += 1 + g.rng.Intn(sides)
	}
	return total
}

// CoinFlip returns true half of the time
func (g *RandomNumberGenerator) CoinFlip() bool {
	return g.rng.Intn(2) == 0
}

// RollPercent returns a value in [1, 100]
func (g *RandomNumberGenerator) RollPercent() int {
	return 1 + g.rng.Intn(100)
}

// PercentChance returns true with probability percent/100
func (g *RandomNumberGenerator) PercentChance(percent int) bool {
	return g.RollPercent() <= percent
}
