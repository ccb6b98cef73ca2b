package kmeans

import (
	"math"

	"github.com/hupe1980/newsclust/distance"
)

// Nearest returns the index of the centroid closest to vec under dist.
// Exact ties resolve to the lowest index.
func Nearest(vec []float64, centroids [][]float64, dist distance.Func) int {
	best := -1
	minDist := math.Inf(1)

	for j, center := range centroids {
		d := dist(vec, center)
		if d < minDist || best == -1 {
			minDist = d
			best = j
		}
	}

	return best
}

// Assign overwrites labels[i] with the nearest centroid of data[i] and returns
// how many labels changed. len(labels) must equal len(data).
func Assign(data [][]float64, centroids [][]float64, labels []int, dist distance.Func) int {
	changed := 0
	for i, vec := range data {
		c := Nearest(vec, centroids, dist)
		if labels[i] != c {
			labels[i] = c
			changed++
		}
	}
	return changed
}
