package geoweights

import (
	"context"
	"time"

	"github.com/hupe1980/geoweights/estimate"
	"github.com/hupe1980/geoweights/index"
)

// Estimator calibrates thresholds over a fixed point set. The index is
// built once and shared by every call. All distances and thresholds are in
// the estimator's units.
type Estimator struct {
	idx   index.Index
	units Units
	opts  options
}

// NewEstimator indexes the coordinates x, y.
func NewEstimator(x, y []float64, u Units, optFns ...Option) (*Estimator, error) {
	o := applyOptions(optFns)
	idx, err := newIndex(o.backend, u, x, y)
	if err != nil {
		return nil, err
	}
	return &Estimator{idx: idx, units: u, opts: o}, nil
}

// Len returns the number of observations.
func (e *Estimator) Len() int {
	return e.idx.Len()
}

func (e *Estimator) estimateOptions() estimate.Options {
	return estimate.Options{
		Rand:   e.opts.rand,
		Logger: e.opts.logger.Logger,
	}
}

func (e *Estimator) record(ctx context.Context, name string, value float64, start time.Time, err error) {
	e.opts.metricsCollector.RecordEstimate(name, time.Since(start), err)
	e.opts.logger.LogEstimate(ctx, name, value, err)
}

func (e *Estimator) convert(s estimate.DistanceStats) estimate.DistanceStats {
	s.Min = e.units.fromRadians(s.Min)
	s.Max = e.units.fromRadians(s.Max)
	s.Mean = e.units.fromRadians(s.Mean)
	s.Median = e.units.fromRadians(s.Median)
	return s
}

// PairwiseDistance returns the mean and median distance between pairs of
// observations, exhaustive for small sets and sampled otherwise.
func (e *Estimator) PairwiseDistance(ctx context.Context) (estimate.DistanceStats, error) {
	start := time.Now()
	s, err := estimate.PairwiseDistance(ctx, e.idx, e.estimateOptions())
	s = e.convert(s)
	e.record(ctx, "pairwise_distance", s.Mean, start, err)
	return s, err
}

// NearestNeighborStats returns exact statistics of the distance from each
// observation to its nearest other observation.
func (e *Estimator) NearestNeighborStats(ctx context.Context) (estimate.DistanceStats, error) {
	start := time.Now()
	s, err := estimate.NearestNeighborStats(ctx, e.idx)
	s = e.convert(s)
	e.record(ctx, "nearest_neighbor", s.Max, start, err)
	return s, err
}

// AvgNeighbors estimates the average neighbour count at threshold th.
func (e *Estimator) AvgNeighbors(ctx context.Context, th float64) (float64, error) {
	start := time.Now()
	avg, err := estimate.AvgNeighbors(ctx, e.idx, e.units.toIndex(th), e.estimateOptions())
	e.record(ctx, "avg_neighbors", avg, start, err)
	return avg, err
}

// ThresholdForAvgNeighbors searches for the threshold giving about target
// neighbours per observation.
func (e *Estimator) ThresholdForAvgNeighbors(ctx context.Context, target float64) (estimate.ThresholdEstimate, error) {
	start := time.Now()
	est, err := estimate.ThresholdForAvgNeighbors(ctx, e.idx, target, e.estimateOptions())
	est.Threshold = e.units.fromIndex(est.Threshold)
	e.record(ctx, "threshold_for_avg_neighbors", est.Threshold, start, err)
	return est, err
}

// ThresholdForPairs searches for the threshold giving about pairs
// unordered neighbour pairs.
func (e *Estimator) ThresholdForPairs(ctx context.Context, pairs int) (estimate.ThresholdEstimate, error) {
	start := time.Now()
	est, err := estimate.ThresholdForPairs(ctx, e.idx, pairs, e.estimateOptions())
	est.Threshold = e.units.fromIndex(est.Threshold)
	e.record(ctx, "threshold_for_pairs", est.Threshold, start, err)
	return est, err
}

// SuggestThreshold returns nearest-neighbour distance statistics for the
// coordinates x, y. Max is the smallest threshold that leaves no
// observation without a neighbour.
func SuggestThreshold(ctx context.Context, x, y []float64, u Units, optFns ...Option) (estimate.DistanceStats, error) {
	e, err := NewEstimator(x, y, u, optFns...)
	if err != nil {
		return estimate.DistanceStats{}, err
	}
	return e.NearestNeighborStats(ctx)
}
