package kmeans

import (
	"fmt"
	"slices"
)

// Initializer picks the starting centroid set.
type Initializer interface {
	// Init returns exactly k centroids for data.
	Init(data [][]float64, k int) ([][]float64, error)
}

// FirstK takes the first k observations, in dataset order, as the initial
// centroids. It is deterministic but sensitive to input ordering: duplicate
// values among the first k rows start several clusters on the same point.
type FirstK struct{}

// Init implements Initializer.
func (FirstK) Init(data [][]float64, k int) ([][]float64, error) {
	if k <= 0 {
		return nil, &InvalidParameterError{Name: "k", Value: k}
	}
	if len(data) < k {
		return nil, fmt.Errorf("%w: %d observations for k=%d", ErrInsufficientData, len(data), k)
	}

	centroids := make([][]float64, k)
	for i := range centroids {
		centroids[i] = slices.Clone(data[i])
	}
	return centroids, nil
}
