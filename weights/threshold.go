package weights

import (
	"context"
	"math"
	"sync"

	"github.com/hupe1980/geoweights/index"
	"github.com/hupe1980/geoweights/kernel"
)

// DefaultMaxCandidates is the candidate count per observation above which
// a threshold build consults its OverflowFunc.
const DefaultMaxCandidates = 200

// OverflowFunc decides whether a threshold build continues after an
// observation produced more box-query candidates than the configured limit.
// It is called at most once per build. With parallel workers, rows that are
// not yet past their candidate check wait for the decision; rows already
// past it finish.
type OverflowFunc func(obs, candidates int) bool

// ThresholdOptions configures a distance-threshold build.
type ThresholdOptions struct {
	BuildOptions

	// Threshold is the inclusive distance limit in index space: planar
	// units, or unit-sphere chord length for geographic indexes
	// (see geo.DistToChord).
	Threshold float64

	// Miles reports geographic distances in miles instead of kilometers.
	Miles bool

	// Inverse sets each weight to distance^Power. Ignored with a kernel.
	Inverse bool

	// Power is the exponent applied when Inverse is set. Kernel weights
	// are distance/Threshold and never raised to Power.
	Power float64

	// Kernel reweights distances divided by the threshold.
	Kernel kernel.Kernel

	// UseKernelDiagonals applies the kernel to self entries. Otherwise
	// they are fixed at 1.
	UseKernelDiagonals bool

	// MaxCandidates defaults to DefaultMaxCandidates.
	MaxCandidates int

	// OnOverflow is consulted once when MaxCandidates is exceeded.
	// Nil continues the build.
	OnOverflow OverflowFunc
}

// Threshold builds a distance-band graph over idx.
//
// Every observation links to exactly the other observations whose distance
// is at most opts.Threshold. Candidates come from a box query and are
// re-tested against the exact distance. The result has SymmetryChecked set
// and Symmetric unset; call CheckSymmetry to derive the flag.
func Threshold(ctx context.Context, idx index.Index, opts ThresholdOptions) (*Graph, error) {
	th := opts.Threshold
	if th < 0 || math.IsNaN(th) {
		return nil, ErrInvalidThreshold
	}
	if !opts.Kernel.Valid() {
		return nil, ErrInvalidKernel
	}

	n := idx.Len()
	u := newUnits(idx, opts.Miles)
	useKernel := opts.Kernel != kernel.None
	thOut := u.out(th)

	limit := opts.MaxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	guard := &overflowGuard{fn: opts.OnOverflow, limit: limit}

	logger := opts.logger()
	logger.Debug("threshold build started",
		"observations", n,
		"threshold", th,
		"space", idx.Space().String(),
		"kernel", opts.Kernel.String(),
	)

	g := NewGraph(n)
	g.SymmetryChecked = true

	err := forEachRow(ctx, n, opts.BuildOptions, "threshold", func(i int) error {
		candidates := idx.Box(idx.Entry(i).Coords, th)
		if err := guard.check(i, len(candidates)); err != nil {
			return err
		}

		var row Row
		for _, c := range candidates {
			if c.ID == i || c.Distance > th {
				continue
			}
			d := u.out(c.Distance)

			w := d
			switch {
			case useKernel:
				if thOut > 0 {
					w = d / thOut
				}
			case opts.Inverse:
				w = math.Pow(d, opts.Power)
			}
			row = append(row, Neighbor{Index: c.ID, Weight: w})
		}

		if useKernel {
			row = append(row, Neighbor{Index: i, Weight: 1})
		}

		g.Rows[i] = row
		return nil
	})
	if err != nil {
		logger.Debug("threshold build failed", "error", err)
		return nil, err
	}

	if guard.asked {
		logger.Warn("threshold build exceeded candidate limit",
			"observation", guard.obs,
			"candidates", guard.candidates,
			"limit", limit,
		)
	}

	ApplyKernel(g, opts.Kernel, opts.UseKernelDiagonals)

	logger.Debug("threshold build completed", "observations", n, "edges", g.NumEdges())
	return g, nil
}

type overflowGuard struct {
	fn    OverflowFunc
	limit int

	mu         sync.Mutex
	asked      bool
	proceed    bool
	obs        int
	candidates int
}

func (g *overflowGuard) check(obs, candidates int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if candidates > g.limit && !g.asked {
		g.asked = true
		g.obs, g.candidates = obs, candidates
		g.proceed = g.fn == nil || g.fn(obs, candidates)
	}

	if g.asked && !g.proceed {
		return &AbortError{Obs: g.obs, Candidates: g.candidates, Limit: g.limit}
	}
	return nil
}
