package newsclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter         prometheus.Counter
//	    iterationHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRun(k, iterations int, state newsclust.State, duration time.Duration, err error) {
//	    p.runCounter.Inc()
//	    p.iterationHistogram.Observe(float64(iterations))
//	}
type MetricsCollector interface {
	// RecordRun is called after each clustering run.
	// iterations and state are zero values if err is non-nil.
	RecordRun(k, iterations int, state State, duration time.Duration, err error)

	// RecordLoad is called after each source is loaded.
	// records is the number of observations kept, skipped the number of
	// rows dropped under the skip policy.
	RecordLoad(source string, records, skipped int, duration time.Duration, err error)

	// RecordPublish is called after each report publication.
	RecordPublish(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, State, time.Duration, error)   {}
func (NoopMetricsCollector) RecordLoad(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPublish(int, time.Duration, error)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount           atomic.Int64
	RunErrors          atomic.Int64
	RunConverged       atomic.Int64
	RunLimitReached    atomic.Int64
	RunTotalIterations atomic.Int64
	RunTotalNanos      atomic.Int64
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
	LoadRecords        atomic.Int64
	LoadSkipped        atomic.Int64
	PublishCount       atomic.Int64
	PublishErrors      atomic.Int64
	PublishBytes       atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(k, iterations int, state State, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.RunTotalIterations.Add(int64(iterations))
	switch state {
	case StateConverged:
		b.RunConverged.Add(1)
	case StateIterationLimitReached:
		b.RunLimitReached.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(source string, records, skipped int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadRecords.Add(int64(records))
	b.LoadSkipped.Add(int64(skipped))
}

// RecordPublish implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPublish(size int, duration time.Duration, err error) {
	b.PublishCount.Add(1)
	if err != nil {
		b.PublishErrors.Add(1)
		return
	}
	b.PublishBytes.Add(int64(size))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:         b.RunCount.Load(),
		RunErrors:        b.RunErrors.Load(),
		RunConverged:     b.RunConverged.Load(),
		RunLimitReached:  b.RunLimitReached.Load(),
		RunAvgIterations: b.getAvgIterations(),
		RunAvgNanos:      b.getAvgRunNanos(),
		LoadCount:        b.LoadCount.Load(),
		LoadErrors:       b.LoadErrors.Load(),
		LoadRecords:      b.LoadRecords.Load(),
		LoadSkipped:      b.LoadSkipped.Load(),
		PublishCount:     b.PublishCount.Load(),
		PublishErrors:    b.PublishErrors.Load(),
		PublishBytes:     b.PublishBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgIterations() int64 {
	ok := b.RunCount.Load() - b.RunErrors.Load()
	if ok <= 0 {
		return 0
	}
	return b.RunTotalIterations.Load() / ok
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount         int64
	RunErrors        int64
	RunConverged     int64
	RunLimitReached  int64
	RunAvgIterations int64
	RunAvgNanos      int64
	LoadCount        int64
	LoadErrors       int64
	LoadRecords      int64
	LoadSkipped      int64
	PublishCount     int64
	PublishErrors    int64
	PublishBytes     int64
}
