// Package rtree implements index.Index on top of an R-tree.
//
// The tree is bulk-loaded once with one degenerate rectangle per entry and
// is read-only afterwards, so concurrent queries are safe.
package rtree

import (
	"github.com/dhconnelly/rtreego"

	"github.com/hupe1980/geoweights/index"
)

const (
	minChildren = 25
	maxChildren = 50

	// boxPad widens box queries so points on the boundary survive
	// floating-point rounding in the rectangle arithmetic.
	boxPad = 1e-9
)

func init() {
	index.Register(index.BackendRTree, func(space index.Space, entries []index.Entry) (index.Index, error) {
		return New(space, entries)
	})
}

type item struct {
	id   int
	rect rtreego.Rect
}

func (it *item) Bounds() rtreego.Rect {
	return it.rect
}

// Index is an R-tree backed spatial index.
type Index struct {
	space   index.Space
	entries []index.Entry
	tree    *rtreego.Rtree
	lo, hi  []float64
}

// New bulk-loads an R-tree over entries.
//
// Duplicate coordinates are kept as separate entries. An empty entry slice
// yields an empty index.
func New(space index.Space, entries []index.Entry) (*Index, error) {
	dim := space.Dim()
	if err := index.Validate(entries, dim); err != nil {
		return nil, err
	}

	objs := make([]rtreego.Spatial, len(entries))
	for i, e := range entries {
		objs[i] = &item{id: e.ID, rect: rtreego.Point(e.Coords).ToRect(0)}
	}

	lo, hi := index.BoundsOf(entries, dim)

	return &Index{
		space:   space,
		entries: entries,
		tree:    rtreego.NewTree(dim, minChildren, maxChildren, objs...),
		lo:      lo,
		hi:      hi,
	}, nil
}

// Len returns the number of entries in the tree.
func (x *Index) Len() int { return x.tree.Size() }

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
	if k <= 0 || len(x.entries) == 0 {
		return nil
	}

	found := x.tree.NearestNeighbors(k, rtreego.Point(q))

	res := make([]index.Neighbor, 0, len(found))
	for _, s := range found {
		it, ok := s.(*item)
		if !ok || it == nil {
			continue
		}
		res = append(res, index.Neighbor{
			ID:       it.id,
			Distance: index.Distance(q, x.entries[it.id].Coords),
		})
	}

	index.SortNeighbors(res)
	return res
}

// Box returns all entries within the axis-aligned box of half-width half
// centred at q. The result may contain entries marginally outside the box.
func (x *Index) Box(q []float64, half float64) []index.Neighbor {
	if half < 0 || len(x.entries) == 0 {
		return nil
	}

	found := x.tree.SearchIntersect(rtreego.Point(q).ToRect(half + boxPad*(1+half)))

	res := make([]index.Neighbor, 0, len(found))
	for _, s := range found {
		it := s.(*item)
		res = append(res, index.Neighbor{
			ID:       it.id,
			Distance: index.Distance(q, x.entries[it.id].Coords),
		})
	}
	return res
}

var _ index.Index = (*Index)(nil)
