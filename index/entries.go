package index

import (
	"math"

	"github.com/hupe1980/geoweights/geo"
)

// Planar builds 2-D entries from parallel x/y arrays.
func Planar(x, y []float64) ([]Entry, error) {
	if len(x) != len(y) {
		return nil, &ErrLengthMismatch{X: len(x), Y: len(y)}
	}

	coords := make([]float64, 2*len(x))
	entries := make([]Entry, len(x))
	for i := range x {
		c := coords[2*i : 2*i+2 : 2*i+2]
		c[0], c[1] = x[i], y[i]
		entries[i] = Entry{ID: i, Coords: c}
	}
	return entries, nil
}

// Spherical builds 3-D unit-sphere entries from lon/lat arrays in degrees.
func Spherical(lon, lat []float64) ([]Entry, error) {
	if len(lon) != len(lat) {
		return nil, &ErrLengthMismatch{X: len(lon), Y: len(lat)}
	}

	pts, err := geo.UnitSphere(lon, lat)
	if err != nil {
		return nil, err
	}

	coords := make([]float64, 3*len(pts))
	entries := make([]Entry, len(pts))
	for i, p := range pts {
		c := coords[3*i : 3*i+3 : 3*i+3]
		c[0], c[1], c[2] = p.X, p.Y, p.Z
		entries[i] = Entry{ID: i, Coords: c}
	}
	return entries, nil
}

// Entries builds entries for space from two coordinate arrays: x/y for
// SpacePlanar, lon/lat in degrees for SpaceSphere.
func Entries(space Space, x, y []float64) ([]Entry, error) {
	if space == SpaceSphere {
		return Spherical(x, y)
	}
	return Planar(x, y)
}

// BoundsOf returns the per-axis minimum and maximum of entries with
// dimension dim. Empty input yields zero-valued bounds.
func BoundsOf(entries []Entry, dim int) (lo, hi []float64) {
	lo = make([]float64, dim)
	hi = make([]float64, dim)
	if len(entries) == 0 {
		return lo, hi
	}
	for d := range dim {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for _, e := range entries {
		for d := range dim {
			lo[d] = math.Min(lo[d], e.Coords[d])
			hi[d] = math.Max(hi[d], e.Coords[d])
		}
	}
	return lo, hi
}

// Validate checks that entries are densely numbered 0..n-1 in order and
// have dimension dim.
func Validate(entries []Entry, dim int) error {
	for i, e := range entries {
		if len(e.Coords) != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: len(e.Coords)}
		}
		if e.ID != i {
			return &ErrEntryOrder{Position: i, ID: e.ID}
		}
	}
	return nil
}
