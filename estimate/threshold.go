package estimate

import (
	"context"
	"math"

	"github.com/hupe1980/geoweights/index"
)

// AvgNeighbors estimates the average number of other entries within th of
// an entry.
//
// When the index holds at most Samples entries every entry is counted once,
// in order, and the result is exact. Otherwise Samples query entries are
// drawn with replacement. An empty index yields NaN.
func AvgNeighbors(ctx context.Context, idx index.Index, th float64, opts Options) (float64, error) {
	opts = opts.withDefaults()
	return avgNeighbors(ctx, idx, th, opts)
}

func avgNeighbors(ctx context.Context, idx index.Index, th float64, opts Options) (float64, error) {
	n := idx.Len()
	samples := opts.Samples
	exhaustive := n <= samples
	if exhaustive {
		samples = n
	}

	var total int
	for s := range samples {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		i := s
		if !exhaustive {
			i = opts.Rand.IntN(n)
		}
		total += countWithin(idx, i, th)
	}

	return float64(total) / float64(samples), nil
}

func countWithin(idx index.Index, i int, th float64) int {
	var c int
	for _, nb := range idx.Box(idx.Entry(i).Coords, th) {
		if nb.ID != i && nb.Distance <= th {
			c++
		}
	}
	return c
}

// ThresholdEstimate is the result of a threshold search.
type ThresholdEstimate struct {
	Threshold    float64
	AvgNeighbors float64

	// Iterations is the number of midpoint probes evaluated.
	Iterations int
}

// ThresholdForAvgNeighbors searches [0, bounding-box diagonal] for the
// threshold whose average neighbour count comes closest to target.
//
// The bisection runs at most MaxSearchIterations probes. It stops early on
// an exact match, or when sampling noise puts a probe's estimate outside the
// current bracket. The bracket end closest to target is returned; ties go
// to the upper end.
func ThresholdForAvgNeighbors(ctx context.Context, idx index.Index, target float64, opts Options) (ThresholdEstimate, error) {
	opts = opts.withDefaults()

	lo, hi := 0.0, index.Diagonal(idx)

	loAvg, err := avgNeighbors(ctx, idx, lo, opts)
	if err != nil {
		return ThresholdEstimate{}, err
	}
	hiAvg, err := avgNeighbors(ctx, idx, hi, opts)
	if err != nil {
		return ThresholdEstimate{}, err
	}

	var it int
	for it < opts.MaxSearchIterations {
		it++

		mid := (lo + hi) / 2
		avg, err := avgNeighbors(ctx, idx, mid, opts)
		if err != nil {
			return ThresholdEstimate{}, err
		}

		if avg == target {
			opts.Logger.Debug("threshold search matched", "threshold", mid, "iterations", it)
			return ThresholdEstimate{Threshold: mid, AvgNeighbors: avg, Iterations: it}, nil
		}

		if avg > target {
			if avg > hiAvg {
				break
			}
			hi, hiAvg = mid, avg
		} else {
			if avg < loAvg {
				break
			}
			lo, loAvg = mid, avg
		}
	}

	est := ThresholdEstimate{Threshold: hi, AvgNeighbors: hiAvg, Iterations: it}
	if math.Abs(loAvg-target) < math.Abs(hiAvg-target) {
		est.Threshold, est.AvgNeighbors = lo, loAvg
	}

	opts.Logger.Debug("threshold search finished",
		"target", target,
		"threshold", est.Threshold,
		"avg_neighbors", est.AvgNeighbors,
		"iterations", it,
	)
	return est, nil
}

// ThresholdForPairs searches for the threshold producing about pairs
// unordered neighbour pairs. It targets an average of 2·pairs/n neighbours
// and returns the bounding-box diagonal once pairs reaches n(n-1)/2.
func ThresholdForPairs(ctx context.Context, idx index.Index, pairs int, opts Options) (ThresholdEstimate, error) {
	n := idx.Len()
	if pairs >= n*(n-1)/2 {
		return ThresholdEstimate{
			Threshold:    index.Diagonal(idx),
			AvgNeighbors: float64(max(n-1, 0)),
		}, nil
	}
	return ThresholdForAvgNeighbors(ctx, idx, 2*float64(pairs)/float64(n), opts)
}
