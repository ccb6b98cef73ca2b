package newsclust

import (
	"log/slog"

	"github.com/hupe1980/newsclust/distance"
	"github.com/hupe1980/newsclust/internal/kmeans"
)

// Default run parameters.
const (
	DefaultK             = 3
	DefaultMaxIterations = kmeans.DefaultMaxIterations
	DefaultTolerance     = kmeans.DefaultTolerance
)

// EmptyClusterPolicy decides the next centroid of a cluster that lost all members.
type EmptyClusterPolicy = kmeans.EmptyPolicy

const (
	// EmptyClusterZero resets the centroid to the all-zero vector (default).
	EmptyClusterZero = kmeans.EmptyZero
	// EmptyClusterKeep leaves the centroid where it was.
	EmptyClusterKeep = kmeans.EmptyKeep
)

// ParseEmptyClusterPolicy maps "zero" or "keep" to a policy.
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	p, err := kmeans.ParseEmptyPolicy(s)
	return p, translateError(err)
}

// Initializer picks the starting centroids of a run.
type Initializer = kmeans.Initializer

// FirstK seeds the centroids with the first k observations (default).
type FirstK = kmeans.FirstK

type options struct {
	k                int
	maxIterations    int
	tolerance        float64
	emptyCluster     EmptyClusterPolicy
	initializer      Initializer
	metric           distance.Metric
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Clusterer.
type Option func(*options)

// WithK sets the number of clusters.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithMaxIterations caps the number of Lloyd iterations.
// A run that exhausts the cap ends in StateIterationLimitReached.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the per-centroid movement below which a run converges.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithEmptyClusterPolicy configures how clusters without members are updated.
//
// EmptyClusterZero is the default and can strand a centroid at the origin
// for the rest of the run. EmptyClusterKeep leaves it in place.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyCluster = p
	}
}

// WithInitializer replaces the FirstK centroid initialization.
// If nil is passed, FirstK is used.
func WithInitializer(init Initializer) Option {
	return func(o *options) {
		if init == nil {
			init = FirstK{}
		}
		o.initializer = init
	}
}

// WithMetric sets the distance used to assign observations to centroids.
// Convergence is still measured in Euclidean distance.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &newsclust.BasicMetricsCollector{}
//	c, _ := newsclust.New(newsclust.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Avg iterations: %d\n", stats.RunCount, stats.RunAvgIterations)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := newsclust.NewJSONLogger(slog.LevelInfo)
//	c, _ := newsclust.New(newsclust.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		k:                DefaultK,
		maxIterations:    DefaultMaxIterations,
		tolerance:        DefaultTolerance,
		emptyCluster:     EmptyClusterZero,
		initializer:      FirstK{},
		metric:           distance.MetricL2,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
