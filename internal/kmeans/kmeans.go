package kmeans

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/newsclust/distance"
)

// Default run parameters.
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 0.0001
)

// State is the lifecycle state of a run.
type State int

const (
	StateInitializing State = iota
	StateIterating
	StateConverged
	StateIterationLimitReached
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateIterationLimitReached:
		return "iteration_limit_reached"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateIterationLimitReached
}

// Config holds the parameters of a run.
type Config struct {
	K             int
	MaxIterations int
	Tolerance     float64

	// Init defaults to FirstK.
	Init Initializer

	// EmptyCluster defaults to EmptyZero.
	EmptyCluster EmptyPolicy

	// Metric used by the assignment step. Defaults to MetricL2.
	// Convergence is always measured in Euclidean distance.
	Metric distance.Metric

	// OnIteration, if set, is called after every completed iteration with
	// its 1-based number and the number of labels that changed.
	OnIteration func(iteration, changed int)
}

// Validate rejects non-positive k, iteration budget or tolerance.
func (c Config) Validate() error {
	if c.K <= 0 {
		return &InvalidParameterError{Name: "k", Value: c.K}
	}
	if c.MaxIterations <= 0 {
		return &InvalidParameterError{Name: "max_iterations", Value: c.MaxIterations}
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return &InvalidParameterError{Name: "tolerance", Value: c.Tolerance}
	}
	switch c.EmptyCluster {
	case EmptyZero, EmptyKeep:
	default:
		return &InvalidParameterError{Name: "empty_cluster", Value: c.EmptyCluster}
	}
	if _, err := distance.Provider(c.Metric); err != nil {
		return &InvalidParameterError{Name: "metric", Value: c.Metric}
	}
	return nil
}

// Result is the outcome of a run. Labels[i] is the cluster of observation i.
type Result struct {
	Centroids  [][]float64
	Labels     []int
	State      State
	Iterations int
}

// Run clusters data with Lloyd's algorithm.
//
// It returns the final centroids and labels once every centroid moves less
// than cfg.Tolerance, or after cfg.MaxIterations iterations with
// StateIterationLimitReached. Hitting the limit is not an error.
func Run(ctx context.Context, data [][]float64, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateData(data); err != nil {
		return nil, err
	}

	dist, err := distance.Provider(cfg.Metric)
	if err != nil {
		return nil, err
	}

	init := cfg.Init
	if init == nil {
		init = FirstK{}
	}

	centroids, err := init.Init(data, cfg.K)
	if err != nil {
		return nil, err
	}
	if len(centroids) != cfg.K {
		return nil, fmt.Errorf("initializer returned %d centroids for k=%d", len(centroids), cfg.K)
	}
	dim := len(data[0])
	for i, c := range centroids {
		if len(c) != dim {
			return nil, &DimensionError{Index: i, Expected: dim, Actual: len(c)}
		}
	}

	labels := make([]int, len(data))

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed := Assign(data, centroids, labels, dist)
		next := Update(data, labels, centroids, cfg.EmptyCluster)

		if cfg.OnIteration != nil {
			cfg.OnIteration(iter, changed)
		}

		if Converged(centroids, next, cfg.Tolerance) {
			return &Result{
				Centroids:  next,
				Labels:     labels,
				State:      StateConverged,
				Iterations: iter,
			}, nil
		}

		centroids = next
	}

	return &Result{
		Centroids:  centroids,
		Labels:     labels,
		State:      StateIterationLimitReached,
		Iterations: cfg.MaxIterations,
	}, nil
}

func validateData(data [][]float64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty dataset", ErrInsufficientData)
	}

	dim := len(data[0])
	if dim == 0 {
		return &DimensionError{Index: 0, Expected: 1, Actual: 0}
	}

	for i, vec := range data {
		if len(vec) != dim {
			return &DimensionError{Index: i, Expected: dim, Actual: len(vec)}
		}
		for _, v := range vec {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: observation %d", ErrNonFinite, i)
			}
		}
	}

	return nil
}
