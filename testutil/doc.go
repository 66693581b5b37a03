// Package testutil provides testing utilities for activeset.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for data vectors, index lists and
// selectors.
//
// # Data Vectors
//
//	rng := testutil.NewRNG(seed)
//	data := rng.UniformFloat64s(1 << 16)
//
// # Selectors
//
//	sel := rng.Selector(100, len(data))       // 100 distinct active indices
//	hot := rng.ZipfSelector(100, len(data), 1.5) // skewed, repeats collapse
package testutil
