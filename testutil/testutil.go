package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// ClusteredLikes generates num one-dimensional observations spread around
// the given centers with Gaussian noise. Observation i belongs to
// centers[i%len(centers)]. Values are rounded and clamped to at least 1, like
// real likes counts that survived the non-positive filter.
func (r *RNG) ClusteredLikes(num int, centers []float64, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num)
	vectors := make([][]float64, num)

	for i := range num {
		center := centers[i%len(centers)]
		v := math.Round(center + r.rand.NormFloat64()*spread)
		data[i] = max(v, 1)
		vectors[i] = data[i : i+1]
	}

	return vectors
}

// ZipfLikes returns num likes counts in [1, imax+1) following a Zipf law with
// skew s (> 1). Most articles get few likes, a handful go viral.
func (r *RNG) ZipfLikes(num int, imax uint64, s float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	z := rand.NewZipf(r.rand, s, 1, imax)
	values := make([]float64, num)
	for i := range values {
		values[i] = float64(z.Uint64() + 1)
	}
	return values
}

// LikesCSV renders a "source,likes" delimited file with a header row.
func LikesCSV(source string, likes []int) string {
	var b strings.Builder
	b.WriteString("source,likes\n")
	for _, l := range likes {
		fmt.Fprintf(&b, "%s,%d\n", source, l)
	}
	return b.String()
}
