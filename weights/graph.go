package weights

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/geoweights/internal/summary"
)

// Neighbor is one weighted link of a row.
type Neighbor struct {
	Index  int
	Weight float64
}

// Row holds the links of one observation in the order the index returned
// them.
type Row []Neighbor

// Graph is a sparse spatial weights graph. It has exactly NumObs rows.
type Graph struct {
	NumObs int
	Rows   []Row

	// Symmetric and SymmetryChecked are informational. Builders set them
	// conservatively; CheckSymmetry derives them from the rows.
	Symmetric       bool
	SymmetryChecked bool
}

// NewGraph returns a graph with n empty rows.
func NewGraph(n int) *Graph {
	return &Graph{
		NumObs: n,
		Rows:   make([]Row, n),
	}
}

// NumEdges returns the total number of links, self entries included.
func (g *Graph) NumEdges() int {
	var m int
	for _, r := range g.Rows {
		m += len(r)
	}
	return m
}

// Isolates returns the observations that have no link to another
// observation.
func (g *Graph) Isolates() []int {
	var out []int
	for i, r := range g.Rows {
		if g.degree(i, r) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Neighbors returns the set of observations row i links to, excluding i.
func (g *Graph) Neighbors(i int) *roaring.Bitmap {
	bm := roaring.New()
	for _, nb := range g.Rows[i] {
		if nb.Index != i {
			bm.Add(uint32(nb.Index))
		}
	}
	return bm
}

// Validate checks the row count and neighbour index range.
func (g *Graph) Validate() error {
	if len(g.Rows) != g.NumObs {
		return &ErrRowCount{NumObs: g.NumObs, Rows: len(g.Rows)}
	}
	for i, r := range g.Rows {
		for _, nb := range r {
			if nb.Index < 0 || nb.Index >= g.NumObs {
				return &ErrNeighborRange{Row: i, Neighbor: nb.Index, NumObs: g.NumObs}
			}
		}
	}
	return nil
}

// CheckSymmetry reports whether every link i→j has a matching link j→i,
// ignoring weights and self entries. It records the outcome in Symmetric
// and sets SymmetryChecked.
func (g *Graph) CheckSymmetry() bool {
	sets := make([]*roaring.Bitmap, g.NumObs)
	for i := range g.Rows {
		sets[i] = g.Neighbors(i)
	}

	symmetric := true
outer:
	for i, set := range sets {
		it := set.Iterator()
		for it.HasNext() {
			j := it.Next()
			if !sets[j].Contains(uint32(i)) {
				symmetric = false
				break outer
			}
		}
	}

	g.Symmetric = symmetric
	g.SymmetryChecked = true
	return symmetric
}

// Stats summarises a graph's connectivity.
type Stats struct {
	NumObs   int
	NumEdges int
	Isolates int

	// Neighbour counts per observation, self entries excluded.
	MinNeighbors    int
	MaxNeighbors    int
	MeanNeighbors   float64
	MedianNeighbors float64

	// Density is the share of the n(n-1) possible directed links present.
	Density float64
}

// Stats computes connectivity statistics.
func (g *Graph) Stats() Stats {
	s := Stats{NumObs: g.NumObs}
	if g.NumObs == 0 {
		return s
	}

	counts := make([]float64, len(g.Rows))
	var links int
	for i, r := range g.Rows {
		d := g.degree(i, r)
		counts[i] = float64(d)
		links += d
		if d == 0 {
			s.Isolates++
		}
	}

	sum := summary.Of(counts)
	s.NumEdges = g.NumEdges()
	s.MinNeighbors = int(sum.Min)
	s.MaxNeighbors = int(sum.Max)
	s.MeanNeighbors = sum.Mean
	s.MedianNeighbors = sum.Median
	if g.NumObs > 1 {
		s.Density = float64(links) / float64(g.NumObs*(g.NumObs-1))
	}
	return s
}

func (g *Graph) degree(i int, r Row) int {
	d := 0
	for _, nb := range r {
		if nb.Index != i {
			d++
		}
	}
	return d
}
