package distance

import (
	"fmt"
	"math"
)

// DimensionMismatchError reports two vectors of different length.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %d != %d", e.Left, e.Right)
}

// Check returns a *DimensionMismatchError if a and b differ in length.
func Check(a, b []float64) error {
	if len(a) != len(b) {
		return &DimensionMismatchError{Left: len(a), Right: len(b)}
	}
	return nil
}

// SquaredEuclidean calculates the sum of squared element-wise differences.
// Panics if the vectors differ in length.
func SquaredEuclidean(a, b []float64) float64 {
	if err := Check(a, b); err != nil {
		panic(err)
	}

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean calculates the L2 distance between two vectors.
// The result is symmetric, non-negative and zero iff a equals b.
// Panics if the vectors differ in length.
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricL2 Metric = iota
	MetricSquaredL2
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricSquaredL2:
		return "SquaredL2"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return Euclidean, nil
	case MetricSquaredL2:
		return SquaredEuclidean, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
