package kmeans

import (
	"testing"

	"github.com/hupe1980/newsclust/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstK(t *testing.T) {
	data := [][]float64{{3}, {1}, {2}}

	centroids, err := FirstK{}.Init(data, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3}, {1}}, centroids)

	// centroids do not alias the dataset
	centroids[0][0] = 99
	assert.Equal(t, 3.0, data[0][0])

	_, err = FirstK{}.Init(data, 4)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = FirstK{}.Init(data, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	all, err := FirstK{}.Init(data, 3)
	require.NoError(t, err)
	assert.Equal(t, data, all)
}

func TestNearest(t *testing.T) {
	centroids := [][]float64{{0}, {10}, {20}}

	assert.Equal(t, 0, Nearest([]float64{1}, centroids, distance.Euclidean))
	assert.Equal(t, 1, Nearest([]float64{11}, centroids, distance.Euclidean))
	assert.Equal(t, 2, Nearest([]float64{100}, centroids, distance.Euclidean))

	// Exact tie goes to the lowest index
	assert.Equal(t, 0, Nearest([]float64{5}, centroids, distance.Euclidean))
	assert.Equal(t, 1, Nearest([]float64{15}, centroids, distance.Euclidean))
	assert.Equal(t, 0, Nearest([]float64{7}, [][]float64{{7}, {7}, {7}}, distance.Euclidean))
}

func TestAssign(t *testing.T) {
	data := [][]float64{{1}, {2}, {10}, {11}}
	labels := make([]int, len(data))

	changed := Assign(data, [][]float64{{1}, {2}}, labels, distance.Euclidean)
	assert.Equal(t, []int{0, 1, 1, 1}, labels, distance.Euclidean)
	assert.Equal(t, 3, changed)

	changed = Assign(data, [][]float64{{1}, {2}}, labels, distance.Euclidean)
	assert.Equal(t, 0, changed)

	changed = Assign(data, [][]float64{{1.5}, {10.5}}, labels, distance.Euclidean)
	assert.Equal(t, []int{0, 0, 1, 1}, labels, distance.Euclidean)
	assert.Equal(t, 1, changed)
}

func TestUpdate(t *testing.T) {
	data := [][]float64{{1, 10}, {3, 20}, {10, 0}}
	prev := [][]float64{{0, 0}, {9, 9}}

	next := Update(data, []int{0, 0, 1}, prev, EmptyZero)
	assert.Equal(t, [][]float64{{2, 15}, {10, 0}}, next)

	// previous set is never mutated
	assert.Equal(t, [][]float64{{0, 0}, {9, 9}}, prev)
}

func TestUpdate_EmptyCluster(t *testing.T) {
	data := [][]float64{{4, 4}, {6, 6}}
	prev := [][]float64{{5, 5}, {7, 3}, {1, 1}}
	labels := []int{0, 0}

	zero := Update(data, labels, prev, EmptyZero)
	assert.Equal(t, [][]float64{{5, 5}, {0, 0}, {0, 0}}, zero)

	keep := Update(data, labels, prev, EmptyKeep)
	assert.Equal(t, [][]float64{{5, 5}, {7, 3}, {1, 1}}, keep)

	keep[1][0] = 100
	assert.Equal(t, 7.0, prev[1][0])
}

func TestConverged(t *testing.T) {
	prev := [][]float64{{1}, {10}}

	assert.True(t, Converged(prev, [][]float64{{1}, {10}}, 0.0001))
	assert.True(t, Converged(prev, [][]float64{{1.00005}, {10}}, 0.0001))

	// one moving centroid blocks convergence
	assert.False(t, Converged(prev, [][]float64{{1}, {10.5}}, 0.0001))

	// strict bound
	assert.False(t, Converged([][]float64{{0}}, [][]float64{{0.5}}, 0.5))
	assert.True(t, Converged([][]float64{{0}}, [][]float64{{0.5}}, 0.50001))

	assert.False(t, Converged(prev, [][]float64{{1}}, 1))
}

func TestEmptyPolicy(t *testing.T) {
	p, err := ParseEmptyPolicy("keep")
	require.NoError(t, err)
	assert.Equal(t, EmptyKeep, p)

	p, err = ParseEmptyPolicy("")
	require.NoError(t, err)
	assert.Equal(t, EmptyZero, p)

	_, err = ParseEmptyPolicy("random")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	assert.Equal(t, "zero", EmptyZero.String())
	assert.Equal(t, "keep", EmptyKeep.String())
	assert.Equal(t, "Unknown(5)", EmptyPolicy(5).String())
}
