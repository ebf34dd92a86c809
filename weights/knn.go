package weights

import (
	"context"
	"math"

	"github.com/hupe1980/geoweights/index"
	"github.com/hupe1980/geoweights/kernel"
)

// KNNOptions configures a KNN build.
type KNNOptions struct {
	BuildOptions

	// K is the number of neighbours per observation.
	K int

	// Miles reports geographic distances in miles instead of kilometers.
	Miles bool

	// Inverse sets each weight to distance^Power. Ignored with a kernel.
	Inverse bool
	Power   float64

	// Kernel reweights normalised distances. kernel.None keeps raw
	// distances.
	Kernel kernel.Kernel

	// Bandwidth normalises distances before the kernel, in output units.
	// Zero derives it as the largest neighbour distance in the graph.
	Bandwidth float64

	// AdaptiveBandwidth normalises each row by its own largest neighbour
	// distance instead of a global bandwidth.
	AdaptiveBandwidth bool

	// UseKernelDiagonals applies the kernel to self entries. Otherwise
	// they are fixed at 1.
	UseKernelDiagonals bool
}

// KNN builds a k-nearest-neighbour graph over idx.
//
// Each row holds up to K neighbours in ascending distance; fewer only when
// the index has no more than K entries. Ties at the K-th distance are
// resolved by the index. The relation is directional, so the result has
// Symmetric and SymmetryChecked unset.
func KNN(ctx context.Context, idx index.Index, opts KNNOptions) (*Graph, error) {
	if opts.K < 1 {
		return nil, ErrInvalidK
	}
	if opts.Bandwidth < 0 || math.IsNaN(opts.Bandwidth) {
		return nil, ErrInvalidBandwidth
	}
	if !opts.Kernel.Valid() {
		return nil, ErrInvalidKernel
	}

	n := idx.Len()
	u := newUnits(idx, opts.Miles)
	useKernel := opts.Kernel != kernel.None

	logger := opts.logger()
	logger.Debug("knn build started",
		"observations", n,
		"k", opts.K,
		"space", idx.Space().String(),
		"kernel", opts.Kernel.String(),
	)

	g := NewGraph(n)
	local := make([]float64, n)

	err := forEachRow(ctx, n, opts.BuildOptions, "knn", func(i int) error {
		found := idx.Nearest(idx.Entry(i).Coords, opts.K+1)

		row := make(Row, 0, opts.K+1)
		for _, nb := range found {
			if len(row) == opts.K {
				break
			}
			if nb.ID == i {
				continue
			}
			d := u.out(nb.Distance)
			local[i] = max(local[i], d)

			w := d
			if !useKernel && opts.Inverse {
				w = math.Pow(d, opts.Power)
			}
			row = append(row, Neighbor{Index: nb.ID, Weight: w})
		}

		if useKernel {
			row = append(row, Neighbor{Index: i, Weight: 0})
			if opts.AdaptiveBandwidth {
				scaleRow(row, local[i])
			}
		}

		g.Rows[i] = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	if useKernel {
		if !opts.AdaptiveBandwidth {
			bw := opts.Bandwidth
			if bw == 0 {
				for _, l := range local {
					bw = max(bw, l)
				}
			}
			for _, r := range g.Rows {
				scaleRow(r, bw)
			}
			logger.Debug("knn bandwidth", "bandwidth", bw)
		}
		ApplyKernel(g, opts.Kernel, opts.UseKernelDiagonals)
	}

	logger.Debug("knn build completed", "observations", n, "edges", g.NumEdges())
	return g, nil
}
