// Package distance provides vector distance calculations for float64 observations.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance (default for assignment, always used for convergence)
//   - MetricSquaredL2: Squared Euclidean distance
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	if err := distance.Check(a, b); err != nil {
//	    // vectors have different dimensionality
//	}
//
// Euclidean and SquaredEuclidean assume both vectors share a dimensionality.
// A mismatch is a programming error and panics with *DimensionMismatchError;
// use Check at API boundaries where input is not yet trusted.
package distance
