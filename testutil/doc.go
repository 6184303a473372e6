// Package testutil provides testing utilities for stylealign.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG and helpers for generating random
// unit embeddings and synthetic prototype matrices.
//
// # Random Embeddings
//
//	rng := testutil.NewRNG(seed)
//	text := rng.UnitVector(512)
//	rows := rng.UnitVectors(64, 512)
//	image := rng.Near(text, 0.1)
package testutil
