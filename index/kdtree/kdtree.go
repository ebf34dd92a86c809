// Package kdtree implements index.Index on top of gonum's k-d tree.
package kdtree

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/hupe1980/geoweights/index"
)

const boxPad = 1e-9

func init() {
	index.Register(index.BackendKDTree, func(space index.Space, entries []index.Entry) (index.Index, error) {
		return New(space, entries)
	})
}

// point is a kdtree.Comparable carrying its observation index.
type point struct {
	id int
	c  []float64
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.c[d] - q.c[d]
}

func (p point) Dims() int { return len(p.c) }

// Distance returns the squared Euclidean distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i := range p.c {
		d := p.c[i] - q.c[i]
		sum += d * d
	}
	return sum
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{Dim: d, points: p}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	return p.points[i].c[p.Dim] < p.points[j].c[p.Dim]
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Index is a k-d tree backed spatial index.
type Index struct {
	space   index.Space
	entries []index.Entry
	tree    *kdtree.Tree
	lo, hi  []float64
}

// New builds a k-d tree over entries.
func New(space index.Space, entries []index.Entry) (*Index, error) {
	dim := space.Dim()
	if err := index.Validate(entries, dim); err != nil {
		return nil, err
	}

	// kdtree.New reorders its input.
	pts := make(points, len(entries))
	for i, e := range entries {
		pts[i] = point{id: e.ID, c: e.Coords}
	}

	x := &Index{
		space:   space,
		entries: entries,
	}
	x.lo, x.hi = index.BoundsOf(entries, dim)
	if len(pts) > 0 {
		x.tree = kdtree.New(pts, false)
	}
	return x, nil
}

// Len returns the number of entries.
func (x *Index) Len() int { return len(x.entries) }

// Dim returns the coordinate dimension.
func (x *Index) Dim() int { return x.space.Dim() }

// Space returns the coordinate space.
func (x *Index) Space() index.Space { return x.space }

// Entry returns the entry for id.
func (x *Index) Entry(id int) index.Entry { return x.entries[id] }

// Bounds returns the bounding box of all entries.
func (x *Index) Bounds() (lo, hi []float64) { return x.lo, x.hi }

// Nearest returns up to k entries closest to q, nearest first.
func (x *Index) Nearest(q []float64, k int) []index.Neighbor {
	if k <= 0 || x.tree == nil {
		return nil
	}

	keep := kdtree.NewNKeeper(k)
	x.tree.NearestSet(keep, point{id: -1, c: q})

	return x.collect(q, keep.Heap, nil)
}

// Box returns all entries within the axis-aligned box of half-width half
// centred at q. Candidates come from the circumscribing sphere and are
// trimmed to the box.
func (x *Index) Box(q []float64, half float64) []index.Neighbor {
	if half < 0 || x.tree == nil {
		return nil
	}

	limit := half + boxPad*(1+half)
	r := limit * math.Sqrt(float64(len(q)))

	keep := kdtree.NewDistKeeper(r * r)
	x.tree.NearestSet(keep, point{id: -1, c: q})

	return x.collect(q, keep.Heap, func(p point) bool {
		for d := range q {
			if math.Abs(p.c[d]-q[d]) > limit {
				return false
			}
		}
		return true
	})
}

func (x *Index) collect(q []float64, h kdtree.Heap, accept func(point) bool) []index.Neighbor {
	res := make([]index.Neighbor, 0, len(h))
	for _, cd := range h {
		// Keepers carry a nil sentinel.
		if cd.Comparable == nil {
			continue
		}
		p := cd.Comparable.(point)
		if accept != nil && !accept(p) {
			continue
		}
		res = append(res, index.Neighbor{ID: p.id, Distance: index.Distance(q, p.c)})
	}
	index.SortNeighbors(res)
	return res
}

var _ index.Index = (*Index)(nil)
