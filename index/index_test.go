package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanar(t *testing.T) {
	entries, err := Planar([]float64{0, 1, 2}, []float64{3, 4, 5})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, i, e.ID)
		assert.Equal(t, []float64{float64(i), float64(i + 3)}, e.Coords)
	}

	// Coordinates must not alias each other.
	entries[0].Coords = append(entries[0].Coords, 99)
	assert.Equal(t, []float64{1, 4}, entries[1].Coords)
}

func TestSpherical(t *testing.T) {
	entries, err := Spherical([]float64{0, 90}, []float64{0, 0})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.InDeltaSlice(t, []float64{1, 0, 0}, entries[0].Coords, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, entries[1].Coords, 1e-12)
}

func TestLengthMismatch(t *testing.T) {
	_, err := Planar([]float64{1, 2}, []float64{1})
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 2, lm.X)
	assert.Equal(t, 1, lm.Y)

	_, err = Spherical([]float64{1}, nil)
	require.ErrorAs(t, err, &lm)
}

func TestEntries(t *testing.T) {
	planar, err := Entries(SpacePlanar, []float64{1}, []float64{2})
	require.NoError(t, err)
	assert.Len(t, planar[0].Coords, 2)

	sphere, err := Entries(SpaceSphere, []float64{1}, []float64{2})
	require.NoError(t, err)
	assert.Len(t, sphere[0].Coords, 3)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr any
	}{
		{"ok", []Entry{{ID: 0, Coords: []float64{1, 2}}, {ID: 1, Coords: []float64{3, 4}}}, nil},
		{"empty", nil, nil},
		{"dimension", []Entry{{ID: 0, Coords: []float64{1}}}, &ErrDimensionMismatch{}},
		{"order", []Entry{{ID: 1, Coords: []float64{1, 2}}}, &ErrEntryOrder{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries, 2)
			switch want := tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *ErrDimensionMismatch:
				assert.ErrorAs(t, err, &want)
			case *ErrEntryOrder:
				assert.ErrorAs(t, err, &want)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	entries, err := Planar([]float64{-1, 3, 2}, []float64{5, -2, 0})
	require.NoError(t, err)

	lo, hi := BoundsOf(entries, 2)
	assert.Equal(t, []float64{-1, -2}, lo)
	assert.Equal(t, []float64{3, 5}, hi)

	lo, hi = BoundsOf(nil, 3)
	assert.Equal(t, []float64{0, 0, 0}, lo)
	assert.Equal(t, []float64{0, 0, 0}, hi)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance([]float64{0, 0}, []float64{3, 4}), 1e-12)
	assert.InDelta(t, math.Sqrt(3), Distance([]float64{0, 0, 0}, []float64{1, 1, 1}), 1e-12)
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendRTree, false},
		{"rtree", BackendRTree, false},
		{" KDTree ", BackendKDTree, false},
		{"quadtree", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestSpace(t *testing.T) {
	assert.Equal(t, 2, SpacePlanar.Dim())
	assert.Equal(t, 3, SpaceSphere.Dim())
	assert.Equal(t, "Planar", SpacePlanar.String())
	assert.Equal(t, "Sphere", SpaceSphere.String())
}

func TestSortNeighbors(t *testing.T) {
	ns := []Neighbor{{ID: 0, Distance: 2}, {ID: 1, Distance: 1}, {ID: 2, Distance: 2}, {ID: 3, Distance: 0}}
	SortNeighbors(ns)
	assert.Equal(t, []Neighbor{{ID: 3, Distance: 0}, {ID: 1, Distance: 1}, {ID: 0, Distance: 2}, {ID: 2, Distance: 2}}, ns)
}

func TestNewUnregistered(t *testing.T) {
	_, err := New(Backend(42), SpacePlanar, nil)
	assert.Error(t, err)
}
