package integration_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoweights"
	"github.com/hupe1980/geoweights/blobstore"
	"github.com/hupe1980/geoweights/gwt"
	"github.com/hupe1980/geoweights/testutil"
)

// TestE2E_GeographicPipeline estimates a threshold, builds, saves, reloads
// and checks the result against brute force.
func TestE2E_GeographicPipeline(t *testing.T) {
	ctx := context.Background()
	lon, lat := testutil.NewRNG(11).LonLat(400)

	// 1. Estimate
	est, err := geoweights.NewEstimator(lon, lat, geoweights.Kilometers)
	require.NoError(t, err)

	e, err := est.ThresholdForAvgNeighbors(ctx, 4)
	require.NoError(t, err)
	require.Positive(t, e.Threshold)

	// 2. Build
	g, err := geoweights.Threshold(e.Threshold).Units(geoweights.Kilometers).Build(ctx, lon, lat)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	want := testutil.Within(len(lon), testutil.ArcKm(lon, lat), e.Threshold)
	for i, row := range g.Rows {
		got := make(map[int]float64, len(row))
		for _, nb := range row {
			got[nb.Index] = nb.Weight
		}
		require.Len(t, got, len(want[i]), "row %d", i)
		for _, j := range want[i] {
			assert.InEpsilon(t, testutil.ArcKm(lon, lat)(i, j), got[j], 1e-6, "row %d -> %d", i, j)
		}
	}

	// 3. Save and reload
	ids := make([]int64, len(lon))
	for i := range ids {
		ids[i] = int64(1000 + i)
	}
	path := filepath.Join(t.TempDir(), "cities.gwt")
	require.NoError(t, geoweights.Save(ctx, path, g, "random points", "POP", ids))

	f, err := gwt.Load(path)
	require.NoError(t, err)
	assert.Equal(t, len(lon), f.NumObs)
	assert.Equal(t, "random points", f.Layer)
	assert.Equal(t, "POP", f.Variable)
	assert.Len(t, f.Edges, g.NumEdges())

	loaded, err := f.Graph(ids)
	require.NoError(t, err)
	require.Equal(t, g.NumObs, loaded.NumObs)
	for i := range g.Rows {
		assert.True(t, g.Neighbors(i).Equals(loaded.Neighbors(i)), "row %d", i)
	}
	assert.True(t, loaded.Symmetric)
}

// TestE2E_ConfigDriven runs a build described by a YAML file and stores it
// compressed in a blob store.
func TestE2E_ConfigDriven(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "weights.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
method: knn
units: mi
k: 5
kernel: triangular
adaptive: true
workers: 4
backend: kdtree
`), 0o644))

	cfg, err := geoweights.LoadConfig(cfgPath)
	require.NoError(t, err)

	lon, lat := testutil.NewRNG(12).LonLat(300)
	metrics := &geoweights.BasicMetricsCollector{}

	g, err := cfg.Build(ctx, lon, lat, geoweights.WithMetricsCollector(metrics))
	require.NoError(t, err)

	for i, row := range g.Rows {
		require.Len(t, row, 6, "row %d", i)
		for _, nb := range row {
			if nb.Index == i {
				assert.Equal(t, 1.0, nb.Weight)
				continue
			}
			assert.GreaterOrEqual(t, nb.Weight, 0.0)
			assert.LessOrEqual(t, nb.Weight, 1.0)
		}
	}

	store := blobstore.NewLocalStore(filepath.Join(dir, "blobs"))
	require.NoError(t, geoweights.SaveBlob(ctx, store, "knn5.gwt.zst", g, "random", "", nil, geoweights.WithMetricsCollector(metrics)))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"knn5.gwt.zst"}, names)

	f, err := gwt.LoadBlob(ctx, store, "knn5.gwt.zst")
	require.NoError(t, err)
	assert.Len(t, f.Edges, g.NumEdges())

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(g.NumEdges()), stats.SaveEdges)
}

// TestE2E_SuggestedThresholdConnects checks that the suggested threshold
// leaves no isolates, in every unit.
func TestE2E_SuggestedThresholdConnects(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(13)
	x, y := rng.Points(250, 50)
	lon, lat := rng.LonLat(250)

	tests := []struct {
		units geoweights.Units
		x, y  []float64
	}{
		{geoweights.Planar, x, y},
		{geoweights.Kilometers, lon, lat},
		{geoweights.Miles, lon, lat},
	}

	for _, tt := range tests {
		t.Run(tt.units.String(), func(t *testing.T) {
			s, err := geoweights.SuggestThreshold(ctx, tt.x, tt.y, tt.units)
			require.NoError(t, err)

			// Round-trip through the chord conversion can lose the last ulp.
			th := s.Max * (1 + 1e-9)
			g, err := geoweights.Threshold(th).Units(tt.units).Build(ctx, tt.x, tt.y)
			require.NoError(t, err)
			assert.Empty(t, g.Isolates())
			assert.False(t, math.IsInf(s.Max, 0))
		})
	}
}
