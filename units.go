package geoweights

import (
	"fmt"
	"strings"

	"github.com/hupe1980/geoweights/geo"
	"github.com/hupe1980/geoweights/index"
	_ "github.com/hupe1980/geoweights/index/kdtree"
	_ "github.com/hupe1980/geoweights/index/rtree"
)

// Units selects the coordinate space of the input and the unit of every
// distance and threshold a caller passes in or gets back.
type Units int

const (
	// Planar treats coordinates as x/y in a projected plane. Distances are
	// Euclidean in the coordinate unit.
	Planar Units = iota
	// Kilometers treats coordinates as lon/lat degrees. Distances are
	// great-circle kilometers.
	Kilometers
	// Miles treats coordinates as lon/lat degrees. Distances are
	// great-circle miles.
	Miles
)

// ParseUnits parses "planar", "km" or "mi". The empty string is Planar.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "planar", "euclidean":
		return Planar, nil
	case "km", "kilometers", "kilometres":
		return Kilometers, nil
	case "mi", "miles":
		return Miles, nil
	default:
		return Planar, fmt.Errorf("unknown units %q", s)
	}
}

func (u Units) String() string {
	switch u {
	case Planar:
		return "planar"
	case Kilometers:
		return "km"
	case Miles:
		return "mi"
	default:
		return fmt.Sprintf("Units(%d)", int(u))
	}
}

// Geographic reports whether coordinates are lon/lat.
func (u Units) Geographic() bool {
	return u == Kilometers || u == Miles
}

func (u Units) space() index.Space {
	if u.Geographic() {
		return index.SpaceSphere
	}
	return index.SpacePlanar
}

// toIndex converts a distance in u to index space.
func (u Units) toIndex(d float64) float64 {
	if u.Geographic() {
		return geo.DistToChord(d, u == Miles)
	}
	return d
}

// fromIndex converts an index-space distance to u.
func (u Units) fromIndex(d float64) float64 {
	if u.Geographic() {
		return geo.ChordToDist(d, u == Miles)
	}
	return d
}

// fromRadians converts an estimator distance to u. Planar distances pass
// through unchanged.
func (u Units) fromRadians(d float64) float64 {
	switch u {
	case Kilometers:
		return geo.RadToKm(d)
	case Miles:
		return geo.RadToMi(d)
	default:
		return d
	}
}

func newIndex(backend index.Backend, u Units, x, y []float64) (index.Index, error) {
	entries, err := index.Entries(u.space(), x, y)
	if err != nil {
		return nil, err
	}
	return index.New(backend, u.space(), entries)
}
