// Package testutil provides testing utilities for newsclust.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG that generates likes datasets
// shaped like real per-article engagement counts.
//
// # Datasets
//
//	rng := testutil.NewRNG(seed)
//	data := rng.ClusteredLikes(300, []float64{50, 400, 2500}, 20)
//	values := rng.ZipfLikes(1000, 100000, 1.2)
//
// # Delimited sources
//
//	csv := testutil.LikesCSV("cnn", []int{12, 0, 48})
package testutil
