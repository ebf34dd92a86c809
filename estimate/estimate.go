package estimate

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/geoweights/geo"
	"github.com/hupe1980/geoweights/index"
	"github.com/hupe1980/geoweights/internal/summary"
)

const (
	// DefaultMaxIterations bounds exhaustive pairwise enumeration and the
	// number of Monte-Carlo draws.
	DefaultMaxIterations = 1_000_000

	// DefaultSamples is the number of query points AvgNeighbors draws.
	DefaultSamples = 100

	// DefaultMaxSearchIterations bounds the threshold bisection.
	DefaultMaxSearchIterations = 20

	// checkEvery is how many iterations pass between context checks.
	checkEvery = 4096
)

// Options configures the estimators. Zero values select the defaults.
type Options struct {
	Rand                *rand.Rand
	MaxIterations       int
	Samples             int
	MaxSearchIterations int
	Logger              *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Samples <= 0 {
		o.Samples = DefaultSamples
	}
	if o.MaxSearchIterations <= 0 {
		o.MaxSearchIterations = DefaultMaxSearchIterations
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// DistanceStats summarises a sample of distances.
type DistanceStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64

	// Count is the number of distances the statistics were computed from.
	Count int

	// Exhaustive is false when the distances were sampled.
	Exhaustive bool
}

func statsOf(d []float64, exhaustive bool) DistanceStats {
	s := summary.Of(d)
	return DistanceStats{
		Min:        s.Min,
		Max:        s.Max,
		Mean:       s.Mean,
		Median:     s.Median,
		Count:      s.Count,
		Exhaustive: exhaustive,
	}
}

// metric returns the reported distance between entries i and j: Euclidean
// for planar indexes, radians for geographic ones.
func metric(idx index.Index) func(i, j int) float64 {
	if idx.Space() == index.SpaceSphere {
		return func(i, j int) float64 {
			return geo.ChordToRad(index.Distance(idx.Entry(i).Coords, idx.Entry(j).Coords))
		}
	}
	return func(i, j int) float64 {
		return index.Distance(idx.Entry(i).Coords, idx.Entry(j).Coords)
	}
}

// PairwiseDistance returns mean and median pairwise distance.
//
// All n(n-1)/2 pairs are enumerated when that count is below
// MaxIterations. Otherwise MaxIterations pairs are drawn uniformly with
// replacement; draws with i == j are kept and contribute a zero distance.
// Fewer than two entries yield NaN statistics.
func PairwiseDistance(ctx context.Context, idx index.Index, opts Options) (DistanceStats, error) {
	opts = opts.withDefaults()

	n := idx.Len()
	dist := metric(idx)
	pairs := n * (n - 1) / 2

	if pairs < opts.MaxIterations {
		d := make([]float64, 0, pairs)
		for i := range n {
			if err := ctx.Err(); err != nil {
				return DistanceStats{}, err
			}
			for j := i + 1; j < n; j++ {
				d = append(d, dist(i, j))
			}
		}
		opts.Logger.Debug("pairwise distance", "pairs", len(d), "exhaustive", true)
		return statsOf(d, true), nil
	}

	d := make([]float64, opts.MaxIterations)
	for it := range d {
		if it%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return DistanceStats{}, err
			}
		}
		d[it] = dist(opts.Rand.IntN(n), opts.Rand.IntN(n))
	}
	opts.Logger.Debug("pairwise distance", "pairs", len(d), "exhaustive", false)
	return statsOf(d, false), nil
}

// NearestNeighborStats returns exact statistics of every entry's distance
// to its nearest other entry.
func NearestNeighborStats(ctx context.Context, idx index.Index) (DistanceStats, error) {
	n := idx.Len()
	sphere := idx.Space() == index.SpaceSphere

	d := make([]float64, 0, n)
	for i := range n {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return DistanceStats{}, err
			}
		}
		for _, nb := range idx.Nearest(idx.Entry(i).Coords, 2) {
			if nb.ID == i {
				continue
			}
			v := nb.Distance
			if sphere {
				v = geo.ChordToRad(v)
			}
			d = append(d, v)
			break
		}
	}
	return statsOf(d, true), nil
}
