package kmeans

import "github.com/hupe1980/newsclust/distance"

// Converged reports whether every centroid moved strictly less than tol.
// A single centroid at or beyond tol blocks convergence for the whole set.
func Converged(prev, next [][]float64, tol float64) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !(distance.Euclidean(prev[i], next[i]) < tol) {
			return false
		}
	}
	return true
}
