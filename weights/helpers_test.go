package weights

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoweights/index"
	_ "github.com/hupe1980/geoweights/index/kdtree"
	_ "github.com/hupe1980/geoweights/index/rtree"
	"github.com/hupe1980/geoweights/testutil"
)

var backends = []index.Backend{index.BackendRTree, index.BackendKDTree}

func newIndex(t *testing.T, backend index.Backend, space index.Space, x, y []float64) index.Index {
	t.Helper()

	entries, err := index.Entries(space, x, y)
	require.NoError(t, err)

	idx, err := index.New(backend, space, entries)
	require.NoError(t, err)
	return idx
}

// square returns the corners of the unit square.
func square() (x, y []float64) {
	return []float64{0, 1, 0, 1}, []float64{0, 0, 1, 1}
}

func randomPoints(n int, seed uint64, scale float64) (x, y []float64) {
	return testutil.NewRNG(seed).Points(n, scale)
}
