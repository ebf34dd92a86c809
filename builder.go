package geoweights

import (
	"context"
	"math"
	"time"

	"github.com/hupe1980/geoweights/kernel"
	"github.com/hupe1980/geoweights/weights"
)

// =============================================================================
// KNN Builder (Immutable)
// =============================================================================

// KNN creates a k-nearest-neighbour weights builder.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration, so a configured builder can be shared and reused.
//
// Example:
//
//	g, err := geoweights.KNN(6).
//	    Units(geoweights.Kilometers).
//	    Kernel(kernel.Gaussian).
//	    Adaptive().
//	    Build(ctx, lon, lat)
func KNN(k int) KNNBuilder {
	return KNNBuilder{k: k, power: 1}
}

// KNNBuilder is an immutable fluent builder for KNN weights.
type KNNBuilder struct {
	k               int
	units           Units
	inverse         bool
	power           float64
	kernel          kernel.Kernel
	bandwidth       float64
	adaptive        bool
	kernelDiagonals bool
}

// Units sets the coordinate space and distance unit. Default: Planar.
func (b KNNBuilder) Units(u Units) KNNBuilder {
	b.units = u
	return b
}

// Inverse weights each neighbour by distance^power. Ignored when a kernel
// is set. Negative powers give inverse-distance weights.
func (b KNNBuilder) Inverse(power float64) KNNBuilder {
	b.inverse = true
	b.power = power
	return b
}

// Kernel applies a kernel to bandwidth-normalised distances.
func (b KNNBuilder) Kernel(k kernel.Kernel) KNNBuilder {
	b.kernel = k
	return b
}

// Bandwidth fixes the kernel bandwidth in output units.
// Default: 0, the largest neighbour distance in the graph.
func (b KNNBuilder) Bandwidth(bw float64) KNNBuilder {
	b.bandwidth = bw
	return b
}

// Adaptive normalises each row by its own largest neighbour distance.
func (b KNNBuilder) Adaptive() KNNBuilder {
	b.adaptive = true
	return b
}

// KernelDiagonals applies the kernel to self entries instead of fixing
// them at 1.
func (b KNNBuilder) KernelDiagonals() KNNBuilder {
	b.kernelDiagonals = true
	return b
}

// Build builds the graph over the coordinates x, y: planar x/y, or lon/lat
// degrees for geographic units.
func (b KNNBuilder) Build(ctx context.Context, x, y []float64, optFns ...Option) (*weights.Graph, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithK(b.k)

	start := time.Now()
	g, err := b.build(ctx, x, y, o)
	finish(ctx, o, logger, "knn", len(x), g, start, err)
	return g, err
}

func (b KNNBuilder) build(ctx context.Context, x, y []float64, o options) (*weights.Graph, error) {
	if b.k < 1 {
		return nil, ErrInvalidK
	}

	idx, err := newIndex(o.backend, b.units, x, y)
	if err != nil {
		return nil, err
	}

	return weights.KNN(ctx, idx, weights.KNNOptions{
		BuildOptions:       o.buildOptions(),
		K:                  b.k,
		Miles:              b.units == Miles,
		Inverse:            b.inverse,
		Power:              b.power,
		Kernel:             b.kernel,
		Bandwidth:          b.bandwidth,
		AdaptiveBandwidth:  b.adaptive,
		UseKernelDiagonals: b.kernelDiagonals,
	})
}

// =============================================================================
// Threshold Builder (Immutable)
// =============================================================================

// Threshold creates a distance-band weights builder. th is the inclusive
// distance limit in the builder's units.
//
// Example:
//
//	g, err := geoweights.Threshold(25).
//	    Units(geoweights.Miles).
//	    Build(ctx, lon, lat, geoweights.WithWorkers(4))
func Threshold(th float64) ThresholdBuilder {
	return ThresholdBuilder{threshold: th, power: 1}
}

// ThresholdBuilder is an immutable fluent builder for distance-band weights.
type ThresholdBuilder struct {
	threshold       float64
	units           Units
	inverse         bool
	power           float64
	kernel          kernel.Kernel
	kernelDiagonals bool
}

// Units sets the coordinate space and distance unit. Default: Planar.
func (b ThresholdBuilder) Units(u Units) ThresholdBuilder {
	b.units = u
	return b
}

// Inverse weights each neighbour by distance^power. Ignored when a kernel
// is set.
func (b ThresholdBuilder) Inverse(power float64) ThresholdBuilder {
	b.inverse = true
	b.power = power
	return b
}

// Kernel applies a kernel to distances divided by the threshold.
func (b ThresholdBuilder) Kernel(k kernel.Kernel) ThresholdBuilder {
	b.kernel = k
	return b
}

// KernelDiagonals applies the kernel to self entries instead of fixing
// them at 1.
func (b ThresholdBuilder) KernelDiagonals() ThresholdBuilder {
	b.kernelDiagonals = true
	return b
}

// Build builds the graph over the coordinates x, y: planar x/y, or lon/lat
// degrees for geographic units.
func (b ThresholdBuilder) Build(ctx context.Context, x, y []float64, optFns ...Option) (*weights.Graph, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithThreshold(b.threshold)

	start := time.Now()
	g, err := b.build(ctx, x, y, o)
	finish(ctx, o, logger, "threshold", len(x), g, start, err)
	return g, err
}

func (b ThresholdBuilder) build(ctx context.Context, x, y []float64, o options) (*weights.Graph, error) {
	if b.threshold < 0 || math.IsNaN(b.threshold) {
		return nil, ErrInvalidThreshold
	}

	idx, err := newIndex(o.backend, b.units, x, y)
	if err != nil {
		return nil, err
	}

	return weights.Threshold(ctx, idx, weights.ThresholdOptions{
		BuildOptions:       o.buildOptions(),
		Threshold:          b.units.toIndex(b.threshold),
		Miles:              b.units == Miles,
		Inverse:            b.inverse,
		Power:              b.power,
		Kernel:             b.kernel,
		UseKernelDiagonals: b.kernelDiagonals,
		MaxCandidates:      o.maxCandidates,
		OnOverflow:         o.onOverflow,
	})
}

func finish(ctx context.Context, o options, logger *Logger, method string, n int, g *weights.Graph, start time.Time, err error) {
	var edges int
	if g != nil {
		edges = g.NumEdges()
	}
	o.metricsCollector.RecordBuild(method, n, edges, time.Since(start), err)
	logger.LogBuild(ctx, method, n, edges, err)
}
