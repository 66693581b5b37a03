package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/activeset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformFloat64s returns n values in range [-1, 1).
func (r *RNG) UniformFloat64s(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = r.rand.Float64()*2 - 1
	}
	return out
}

// UniformFloat32s returns n values in range [-1, 1).
func (r *RNG) UniformFloat32s(n int) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float32, n)
	for i := range out {
		out[i] = r.rand.Float32()*2 - 1
	}
	return out
}

// GaussianFloat64s returns n values from a standard normal distribution.
func (r *RNG) GaussianFloat64s(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = r.rand.NormFloat64()
	}
	return out
}

// Indices returns n distinct indices in [0, total) in random order.
// n is capped at total.
func (r *RNG) Indices(n, total int) []uint32 {
	n = min(n, total)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Partial Fisher-Yates over a sparse permutation.
	swapped := make(map[int]int, n)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]uint32, n)
	for i := range n {
		j := i + r.rand.Intn(total-i)
		vi, vj := at(i), at(j)
		swapped[i], swapped[j] = vj, vi
		out[i] = uint32(vj)
	}
	return out
}

// Selector returns a PartlyActive selector with n distinct indices in
// [0, total). n <= 0 returns an AllActive selector.
func (r *RNG) Selector(n, total int) *activeset.Selector {
	sel := activeset.New()
	if n <= 0 {
		return sel
	}
	sel.AddIndices(r.Indices(n, total)...)
	return sel
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// ZipfIndices draws n Zipfian indices in [0, total). Repeats are expected,
// so the result exercises duplicate handling.
func (r *RNG) ZipfIndices(n, total int, s float64) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(r.zipfLocked(total, s))
	}
	return out
}

// ZipfSelector adds n Zipfian draws to a new selector. The result holds at
// most n distinct indices.
func (r *RNG) ZipfSelector(n, total int, s float64) *activeset.Selector {
	sel := activeset.New()
	sel.AddIndices(r.ZipfIndices(n, total, s)...)
	return sel
}
