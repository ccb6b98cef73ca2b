package newsclust

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/newsclust/distance"
	"github.com/hupe1980/newsclust/internal/kmeans"
)

// State is the terminal state of a clustering run.
type State = kmeans.State

const (
	// StateConverged means every centroid moved less than the tolerance.
	StateConverged = kmeans.StateConverged
	// StateIterationLimitReached means the iteration budget ran out first.
	// The result is usable but not a fixed point.
	StateIterationLimitReached = kmeans.StateIterationLimitReached
)

// Clusterer runs k-means with a fixed parameter set.
// It holds no per-run state and is safe for concurrent use.
type Clusterer struct {
	opts options
}

// New validates the options and returns a Clusterer.
// Parameters are rejected here, before any data is seen.
func New(optFns ...Option) (*Clusterer, error) {
	o := applyOptions(optFns)
	c := &Clusterer{opts: o}
	if err := c.config().Validate(); err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// K returns the configured number of clusters.
func (c *Clusterer) K() int {
	return c.opts.k
}

func (c *Clusterer) config() kmeans.Config {
	return kmeans.Config{
		K:             c.opts.k,
		MaxIterations: c.opts.maxIterations,
		Tolerance:     c.opts.tolerance,
		Init:          c.opts.initializer,
		EmptyCluster:  c.opts.emptyCluster,
		Metric:        c.opts.metric,
	}
}

// Cluster partitions data into k clusters. Every observation must have the
// same dimensionality and there must be at least k of them.
//
// The context is checked once per iteration; cancellation returns the
// context error and no result.
func (c *Clusterer) Cluster(ctx context.Context, data [][]float64) (*Result, error) {
	start := time.Now()
	logger := c.opts.logger

	cfg := c.config()
	cfg.OnIteration = func(iteration, changed int) {
		logger.LogIteration(ctx, iteration, changed)
	}

	res, err := kmeans.Run(ctx, data, cfg)
	duration := time.Since(start)
	err = translateError(err)

	if err != nil {
		c.opts.metricsCollector.RecordRun(cfg.K, 0, 0, duration, err)
		logger.LogRun(ctx, len(data), cfg.K, 0, 0, duration, err)
		return nil, err
	}

	c.opts.metricsCollector.RecordRun(cfg.K, res.Iterations, res.State, duration, nil)
	logger.LogRun(ctx, len(data), cfg.K, res.Iterations, res.State, duration, nil)

	return &Result{
		Centroids:  res.Centroids,
		Labels:     res.Labels,
		State:      res.State,
		Iterations: res.Iterations,
	}, nil
}

// ClusterValues clusters scalar observations, each treated as a
// one-dimensional vector.
func (c *Clusterer) ClusterValues(ctx context.Context, values []float64) (*Result, error) {
	data := make([][]float64, len(values))
	for i := range values {
		data[i] = values[i : i+1 : i+1]
	}
	return c.Cluster(ctx, data)
}

// Result is the outcome of a clustering run, paired positionally with the
// input: Labels[i] is the cluster index of observation i.
type Result struct {
	Centroids  [][]float64
	Labels     []int
	State      State
	Iterations int
}

// Converged reports whether the run reached a fixed point.
func (r *Result) Converged() bool {
	return r.State == StateConverged
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Members returns, per cluster, the bitmap of observation indices labeled with it.
func (r *Result) Members() []*roaring.Bitmap {
	members := make([]*roaring.Bitmap, len(r.Centroids))
	for i := range members {
		members[i] = roaring.New()
	}
	for i, l := range r.Labels {
		members[l].Add(uint32(i))
	}
	return members
}

// Sizes returns the number of observations in each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}

// Predict returns the cluster a new observation would be assigned to.
func (r *Result) Predict(vec []float64) (int, error) {
	if len(r.Centroids) == 0 {
		return -1, ErrInsufficientData
	}
	if err := distance.Check(vec, r.Centroids[0]); err != nil {
		return -1, &ErrDimensionMismatch{Index: -1, Expected: len(r.Centroids[0]), Actual: len(vec), cause: err}
	}
	return kmeans.Nearest(vec, r.Centroids, distance.Euclidean), nil
}
