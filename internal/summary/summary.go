// Package summary computes the order statistics shared by the weights
// graph report and the distance estimators.
package summary

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample of values.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Of summarises values without modifying them. The median of an even-sized
// sample is the mean of the two middle values. An empty sample yields NaN
// statistics.
func Of(values []float64) Summary {
	if len(values) == 0 {
		nan := math.NaN()
		return Summary{Min: nan, Max: nan, Mean: nan, Median: nan}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Summary{
		Count:  len(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: Median(sorted),
	}
}

// Median returns the median of an ascending sorted sample.
func Median(sorted []float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case n%2 == 1:
		return sorted[n/2]
	default:
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
}
