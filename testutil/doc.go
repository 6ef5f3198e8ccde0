// Package testutil provides testing utilities for nnscan.
//
// It is used by tests, benchmarks and the gen command of cmd/nnscan.
// It provides helpers for generating random batches and an exact
// float64 oracle for nearest-neighbor results.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(1000, 4)     // uniform [0, 1)
//	vecs = rng.UniformRangeVectors(1000, 4) // uniform [-1, 1)
//
// # Ground Truth
//
//	idx, score := testutil.ReferenceScan(vecs, i)
package testutil
