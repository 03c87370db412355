// Package rng abstracts the randomness the simulation consumes, so behavior
// and damage rolls can be made deterministic under test.
package rng

import "math/rand"

// Source produces the two random shapes the simulation needs. Implementations
// need not be safe for concurrent use; the simulation is single-threaded.
type Source interface {
	// Intn returns a uniform int in [0, n). Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

type mathSource struct {
	r *rand.Rand
}

// NewSource returns a Source backed by math/rand with the given seed.
//
// Postcondition: Two sources built from the same seed produce identical
// streams.
func NewSource(seed int64) Source {
	return &mathSource{r: rand.New(rand.NewSource(seed))}
}

func (m *mathSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return m.r.Intn(n)
}

func (m *mathSource) Float64() float64 { return m.r.Float64() }

// Range returns a uniform float64 in [lo, hi).
//
// Precondition: lo <= hi.
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Chance reports true with probability p.
//
// Postcondition: Always false for p <= 0 and always true for p >= 1.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
