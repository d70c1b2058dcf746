package random

import (
	"math/rand"
	"sync"
)

// Source is a seeded pseudo-random source for dice evaluation. It is safe
// for concurrent use, although draws from concurrent evaluations
// interleave.
type Source struct {
	mu   sync.Mutex
	seed int64
	rng  *rand.Rand
}

// NewSource returns a source seeded with seed.
func NewSource(seed int64) *Source {
	return &Source{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the source was last reset with.
func (s *Source) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// SetSeed resets the source to the start of seed's sequence.
func (s *Source) SetSeed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// Next returns a non-negative int.
func (s *Source) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int()
}

// NextN returns a value in [0, max). It returns 0 when max is not
// positive.
func (s *Source) NextN(max int) int {
	if max <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(max)
}

// Range returns a value in [min, max). It returns min when the interval
// is empty.
func (s *Source) Range(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min)
}
