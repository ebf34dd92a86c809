package index_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoweights/index"
	_ "github.com/hupe1980/geoweights/index/kdtree"
	_ "github.com/hupe1980/geoweights/index/rtree"
	"github.com/hupe1980/geoweights/testutil"
)

var backends = []index.Backend{index.BackendRTree, index.BackendKDTree}

func randomEntries(t *testing.T, space index.Space, n int, seed uint64) []index.Entry {
	t.Helper()

	rng := testutil.NewRNG(seed)
	x, y := rng.Points(n, 100)
	if space == index.SpaceSphere {
		x, y = rng.LonLat(n)
	}

	entries, err := index.Entries(space, x, y)
	require.NoError(t, err)
	return entries
}

func bruteNearest(entries []index.Entry, q []float64, k int) []float64 {
	d := make([]float64, len(entries))
	for i, e := range entries {
		d[i] = index.Distance(q, e.Coords)
	}
	slices.Sort(d)
	if k < len(d) {
		d = d[:k]
	}
	return d
}

func bruteBox(entries []index.Entry, q []float64, half float64) []int {
	var ids []int
outer:
	for _, e := range entries {
		for d := range q {
			if e.Coords[d] < q[d]-half || e.Coords[d] > q[d]+half {
				continue outer
			}
		}
		ids = append(ids, e.ID)
	}
	return ids
}

func TestBackends(t *testing.T) {
	for _, backend := range backends {
		for _, space := range []index.Space{index.SpacePlanar, index.SpaceSphere} {
			t.Run(backend.String()+"/"+space.String(), func(t *testing.T) {
				entries := randomEntries(t, space, 300, 7)

				idx, err := index.New(backend, space, entries)
				require.NoError(t, err)

				assert.Equal(t, len(entries), idx.Len())
				assert.Equal(t, space.Dim(), idx.Dim())
				assert.Equal(t, space, idx.Space())
				assert.Equal(t, entries[42], idx.Entry(42))

				lo, hi := idx.Bounds()
				wantLo, wantHi := index.BoundsOf(entries, space.Dim())
				assert.Equal(t, wantLo, lo)
				assert.Equal(t, wantHi, hi)

				half := 10.0
				if space == index.SpaceSphere {
					half = 0.15
				}

				for _, qi := range []int{0, 17, 150, 299} {
					q := entries[qi].Coords

					t.Run("Nearest", func(t *testing.T) {
						got := idx.Nearest(q, 6)
						require.Len(t, got, 6)

						dists := make([]float64, len(got))
						for i, nb := range got {
							dists[i] = nb.Distance
							assert.InDelta(t, index.Distance(q, entries[nb.ID].Coords), nb.Distance, 1e-12)
						}
						assert.True(t, slices.IsSorted(dists))
						assert.InDeltaSlice(t, bruteNearest(entries, q, 6), dists, 1e-12)
						assert.Equal(t, qi, got[0].ID)
					})

					t.Run("Box", func(t *testing.T) {
						want := bruteBox(entries, q, half)

						var got []int
						for _, nb := range idx.Box(q, half) {
							got = append(got, nb.ID)
						}
						slices.Sort(got)

						// Box results are a superset of the exact box.
						for _, id := range want {
							assert.Contains(t, got, id)
						}
						assert.Contains(t, got, qi)
					})
				}
			})
		}
	}
}

func TestBackendsDuplicates(t *testing.T) {
	entries, err := index.Planar([]float64{1, 1, 1, 5}, []float64{1, 1, 1, 5})
	require.NoError(t, err)

	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			idx, err := index.New(backend, index.SpacePlanar, entries)
			require.NoError(t, err)
			assert.Equal(t, 4, idx.Len())

			got := idx.Nearest([]float64{1, 1}, 3)
			require.Len(t, got, 3)

			ids := []int{got[0].ID, got[1].ID, got[2].ID}
			slices.Sort(ids)
			assert.Equal(t, []int{0, 1, 2}, ids)

			assert.Len(t, idx.Box([]float64{1, 1}, 0), 3)
		})
	}
}

func TestBackendsKExceedsSize(t *testing.T) {
	entries, err := index.Planar([]float64{0, 1}, []float64{0, 0})
	require.NoError(t, err)

	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			idx, err := index.New(backend, index.SpacePlanar, entries)
			require.NoError(t, err)

			got := idx.Nearest([]float64{0, 0}, 5)
			assert.Len(t, got, 2)
		})
	}
}

func TestBackendsEmpty(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			idx, err := index.New(backend, index.SpacePlanar, nil)
			require.NoError(t, err)

			assert.Equal(t, 0, idx.Len())
			assert.Empty(t, idx.Nearest([]float64{0, 0}, 3))
			assert.Empty(t, idx.Box([]float64{0, 0}, 1))
			assert.Zero(t, index.Diagonal(idx))
		})
	}
}

func TestBackendsRejectBadEntries(t *testing.T) {
	bad := []index.Entry{{ID: 0, Coords: []float64{1, 2, 3}}}

	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			_, err := index.New(backend, index.SpacePlanar, bad)
			var dm *index.ErrDimensionMismatch
			assert.ErrorAs(t, err, &dm)
		})
	}
}

func TestDiagonal(t *testing.T) {
	entries, err := index.Planar([]float64{0, 3, 1}, []float64{0, 4, 2})
	require.NoError(t, err)

	for _, backend := range backends {
		idx, err := index.New(backend, index.SpacePlanar, entries)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, index.Diagonal(idx), 1e-12, backend.String())
	}
}
