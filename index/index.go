package index

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrEmpty is returned by operations that need at least one entry.
var ErrEmpty = errors.New("index is empty")

// ErrLengthMismatch reports coordinate arrays of different length.
type ErrLengthMismatch struct {
	X int
	Y int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("coordinate length mismatch: %d x values, %d y values", e.X, e.Y)
}

// ErrDimensionMismatch is returned when an entry does not match the index dimension.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Space identifies the coordinate space an index was built in.
type Space int

const (
	// SpacePlanar is 2-D Euclidean space.
	SpacePlanar Space = iota
	// SpaceSphere is the 3-D unit-sphere embedding of geographic coordinates.
	SpaceSphere
)

// Dim returns the coordinate dimension of the space.
func (s Space) Dim() int {
	if s == SpaceSphere {
		return 3
	}
	return 2
}

func (s Space) String() string {
	switch s {
	case SpacePlanar:
		return "Planar"
	case SpaceSphere:
		return "Sphere"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Backend selects the index implementation.
type Backend int

const (
	// BackendRTree is an R-tree. It is the default.
	BackendRTree Backend = iota
	// BackendKDTree is a k-d tree.
	BackendKDTree
)

func (b Backend) String() string {
	switch b {
	case BackendRTree:
		return "rtree"
	case BackendKDTree:
		return "kdtree"
	default:
		return fmt.Sprintf("Unknown(%d)", int(b))
	}
}

// ParseBackend returns the backend for a name ("rtree" or "kdtree").
// The empty string selects BackendRTree.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rtree":
		return BackendRTree, nil
	case "kdtree":
		return BackendKDTree, nil
	default:
		return 0, fmt.Errorf("unknown index backend %q", name)
	}
}

// Entry pairs a coordinate with its observation index.
type Entry struct {
	ID     int
	Coords []float64
}

// Neighbor is a query result.
type Neighbor struct {
	// ID is the observation index of the result.
	ID int

	// Distance is the Euclidean distance in index space
	// (chord length for SpaceSphere).
	Distance float64
}

// Index is an immutable spatial index over point entries.
type Index interface {
	// Len returns the number of entries.
	Len() int

	// Dim returns the coordinate dimension.
	Dim() int

	// Space returns the coordinate space of the entries.
	Space() Space

	// Entry returns the entry with the given observation index.
	Entry(id int) Entry

	// Bounds returns the per-axis minimum and maximum over all entries.
	Bounds() (lo, hi []float64)

	// Nearest returns up to k entries closest to q in ascending distance.
	// Ties at the k-th distance are broken arbitrarily.
	Nearest(q []float64, k int) []Neighbor

	// Box returns every entry inside the axis-aligned box centred at q with
	// half-width half. Callers re-test the exact distance.
	Box(q []float64, half float64) []Neighbor
}

// Distance returns the Euclidean distance between two coordinates.
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Diagonal returns the length of the bounding-box diagonal of idx.
// An empty index has diagonal 0.
func Diagonal(idx Index) float64 {
	if idx.Len() == 0 {
		return 0
	}
	lo, hi := idx.Bounds()
	return Distance(lo, hi)
}

// ErrEntryOrder is returned when entry IDs are not their positions.
type ErrEntryOrder struct {
	Position int
	ID       int
}

func (e *ErrEntryOrder) Error() string {
	return fmt.Sprintf("entry at position %d has id %d", e.Position, e.ID)
}

// SortNeighbors sorts ns by ascending distance, keeping the relative order
// of equal distances.
func SortNeighbors(ns []Neighbor) {
	slices.SortStableFunc(ns, func(a, b Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
}
