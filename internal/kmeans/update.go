package kmeans

import (
	"fmt"
	"slices"
)

// EmptyPolicy decides the next centroid of a cluster without members.
type EmptyPolicy int

const (
	// EmptyZero resets an empty cluster to the all-zero vector. A reset
	// centroid may never win members back.
	EmptyZero EmptyPolicy = iota
	// EmptyKeep leaves an empty cluster's centroid where it was.
	EmptyKeep
)

func (p EmptyPolicy) String() string {
	switch p {
	case EmptyZero:
		return "zero"
	case EmptyKeep:
		return "keep"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseEmptyPolicy maps "zero" and "keep" to their policy.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch s {
	case "", "zero":
		return EmptyZero, nil
	case "keep":
		return EmptyKeep, nil
	default:
		return 0, &InvalidParameterError{Name: "empty_cluster", Value: s}
	}
}

// Update returns a new centroid set in which centroid i is the element-wise
// mean of the observations labeled i. prev supplies k, the dimensionality and,
// under EmptyKeep, the fallback for empty clusters. prev is never modified.
func Update(data [][]float64, labels []int, prev [][]float64, policy EmptyPolicy) [][]float64 {
	k := len(prev)
	dim := 0
	if k > 0 {
		dim = len(prev[0])
	}

	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}
	counts := make([]int, k)

	for i, vec := range data {
		cluster := labels[i]
		for d := 0; d < dim; d++ {
			sums[cluster][d] += vec[d]
		}
		counts[cluster]++
	}

	for j := 0; j < k; j++ {
		if counts[j] == 0 {
			if policy == EmptyKeep {
				sums[j] = slices.Clone(prev[j])
			}
			continue
		}
		n := float64(counts[j])
		for d := 0; d < dim; d++ {
			sums[j][d] /= n
		}
	}

	return sums
}
