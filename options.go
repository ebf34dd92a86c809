package geoweights

import (
	"log/slog"
	"math/rand/v2"

	"github.com/hupe1980/geoweights/index"
	"github.com/hupe1980/geoweights/weights"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	workers          int
	backend          index.Backend
	rand             *rand.Rand
	onOverflow       weights.OverflowFunc
	maxCandidates    int
	progress         weights.ProgressFunc
}

// Option configures builds, estimators and saves.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geoweights.NewJSONLogger(slog.LevelInfo)
//	g, err := geoweights.KNN(6).Build(ctx, x, y, geoweights.WithLogger(logger))
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

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geoweights.BasicMetricsCollector{}
//	g, _ := geoweights.KNN(4).Build(ctx, x, y, geoweights.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Builds: %d, Avg latency: %dns\n", stats.BuildCount, stats.BuildAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithWorkers sets the number of goroutines building rows.
// Default: 1. The graph does not depend on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithBackend selects the spatial index implementation.
// Default: index.BackendRTree.
func WithBackend(b index.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithRand sets the random source of the sampling estimators. A seeded
// generator makes estimates reproducible. Default: a time-seeded generator
// per call.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithOverflowHandler sets the callback a threshold build consults once
// when an observation has more candidates than the configured maximum.
// Returning false aborts the build with an *weights.AbortError.
// With WithWorkers above 1, rows already past their candidate check when
// the handler is called still finish; the others wait for its answer.
// Default: continue.
func WithOverflowHandler(fn weights.OverflowFunc) Option {
	return func(o *options) {
		o.onOverflow = fn
	}
}

// WithMaxCandidates sets the per-observation candidate count above which
// the overflow handler is consulted. Default: weights.DefaultMaxCandidates.
func WithMaxCandidates(n int) Option {
	return func(o *options) {
		o.maxCandidates = n
	}
}

// WithProgress sets a callback receiving finished and total row counts.
func WithProgress(fn weights.ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          1,
		backend:          index.BackendRTree,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) buildOptions() weights.BuildOptions {
	return weights.BuildOptions{
		Workers:  o.workers,
		Logger:   o.logger.Logger,
		Progress: o.progress,
	}
}
