package weights

import (
	"github.com/hupe1980/geoweights/kernel"
)

// ApplyKernel rewrites every weight of g in place with k. Weights are
// expected to be distances already divided by a bandwidth.
//
// When useDiagonals is false, self entries are set to 1 and skip the
// kernel. ApplyKernel with kernel.None leaves g unchanged.
func ApplyKernel(g *Graph, k kernel.Kernel, useDiagonals bool) {
	if k == kernel.None {
		return
	}
	for i, r := range g.Rows {
		for j := range r {
			if !useDiagonals && r[j].Index == i {
				r[j].Weight = 1
				continue
			}
			r[j].Weight = k.Weight(r[j].Weight)
		}
	}
}

// scaleRow divides every weight in r by bw. A zero bandwidth leaves the
// row unchanged; every distance in it is zero then.
func scaleRow(r Row, bw float64) {
	if bw == 0 {
		return
	}
	for j := range r {
		r[j].Weight /= bw
	}
}
