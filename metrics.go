package geoweights

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each weights build. method is "knn" or
	// "threshold", edges is zero when err is non-nil.
	RecordBuild(method string, observations, edges int, duration time.Duration, err error)

	// RecordEstimate is called after each estimator run.
	RecordEstimate(name string, duration time.Duration, err error)

	// RecordSave is called after each GWT save.
	RecordSave(edges int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEstimate(string, time.Duration, error)        {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildTotalNanos   atomic.Int64
	BuildObservations atomic.Int64
	BuildEdges        atomic.Int64
	EstimateCount     atomic.Int64
	EstimateErrors    atomic.Int64
	EstimateNanos     atomic.Int64
	SaveCount         atomic.Int64
	SaveErrors        atomic.Int64
	SaveEdges         atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ string, observations, edges int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildObservations.Add(int64(observations))
	b.BuildEdges.Add(int64(edges))
}

// RecordEstimate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEstimate(_ string, duration time.Duration, err error) {
	b.EstimateCount.Add(1)
	b.EstimateNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EstimateErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(edges int, _ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveEdges.Add(int64(edges))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:        b.BuildCount.Load(),
		BuildErrors:       b.BuildErrors.Load(),
		BuildAvgNanos:     avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		BuildObservations: b.BuildObservations.Load(),
		BuildEdges:        b.BuildEdges.Load(),
		EstimateCount:     b.EstimateCount.Load(),
		EstimateErrors:    b.EstimateErrors.Load(),
		EstimateAvgNanos:  avg(b.EstimateNanos.Load(), b.EstimateCount.Load()),
		SaveCount:         b.SaveCount.Load(),
		SaveErrors:        b.SaveErrors.Load(),
		SaveEdges:         b.SaveEdges.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	BuildAvgNanos     int64
	BuildObservations int64
	BuildEdges        int64
	EstimateCount     int64
	EstimateErrors    int64
	EstimateAvgNanos  int64
	SaveCount         int64
	SaveErrors        int64
	SaveEdges         int64
}
