package geoweights

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoweights/blobstore"
	"github.com/hupe1980/geoweights/gwt"
)

func TestSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	x, y := randomPoints(40, 9)
	ids := make([]int64, len(x))
	for i := range ids {
		ids[i] = int64(1000 + i)
	}

	g, err := KNN(4).Build(ctx, x, y)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "knn4.gwt")
	require.NoError(t, Save(ctx, path, g, "tracts", "GEOID", ids))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 1+g.NumEdges())
	assert.Equal(t, "40", strings.Fields(lines[0])[1])

	f, err := gwt.Load(path)
	require.NoError(t, err)
	back, err := f.Graph(ids)
	require.NoError(t, err)
	for i := range g.Rows {
		assert.True(t, g.Neighbors(i).Equals(back.Neighbors(i)), "row %d", i)
	}
}

func TestSave_Preconditions(t *testing.T) {
	ctx := context.Background()
	x, y := square()
	g, err := KNN(1).Build(ctx, x, y)
	require.NoError(t, err)

	dir := t.TempDir()
	metrics := &BasicMetricsCollector{}

	assert.ErrorIs(t, Save(ctx, "", g, "l", "v", []int64{1, 2, 3, 4}), ErrEmptyPath)
	assert.ErrorIs(t, Save(ctx, filepath.Join(dir, "a.gwt"), nil, "l", "v", nil, WithMetricsCollector(metrics)), ErrNilGraph)
	assert.ErrorIs(t, Save(ctx, filepath.Join(dir, "b.gwt"), g, "", "v", []int64{1, 2, 3, 4}), ErrEmptyLayer)

	var idErr *gwt.ErrIDCount
	assert.ErrorAs(t, Save(ctx, filepath.Join(dir, "c.gwt"), g, "l", "v", []int64{1}), &idErr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, int64(1), metrics.GetStats().SaveErrors)
}

func TestSaveBlob(t *testing.T) {
	ctx := context.Background()
	x, y := square()
	g, err := Threshold(1.5).Build(ctx, x, y)
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	metrics := &BasicMetricsCollector{}
	require.NoError(t, SaveBlob(ctx, store, "band.gwt.zst", g, "square", "id", []int64{1, 2, 3, 4}, WithMetricsCollector(metrics)))

	f, err := gwt.LoadBlob(ctx, store, "band.gwt.zst")
	require.NoError(t, err)
	assert.Len(t, f.Edges, 12)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(12), stats.SaveEdges)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	x, y := square()
	_, err := KNN(2).Build(context.Background(), x, y, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"weights build completed"`)
	assert.Contains(t, out, `"method":"knn"`)
	assert.Contains(t, out, `"k":2`)
	assert.Contains(t, out, `"edges":8`)

	buf.Reset()
	_, err = KNN(0).Build(context.Background(), x, y, WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"weights build failed"`)
}

func TestMetrics_Build(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	x, y := square()

	_, err := KNN(1).Build(context.Background(), x, y, WithMetricsCollector(metrics))
	require.NoError(t, err)
	_, err = Threshold(-1).Build(context.Background(), x, y, WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(4), stats.BuildObservations)
	assert.Equal(t, int64(4), stats.BuildEdges)
}

func TestOptions_NilFallbacks(t *testing.T) {
	o := applyOptions([]Option{WithLogger(nil), WithMetricsCollector(nil), nil})
	assert.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.Equal(t, 1, o.workers)
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in   string
		want Units
		err  bool
	}{
		{"", Planar, false},
		{"planar", Planar, false},
		{"KM", Kilometers, false},
		{"miles", Miles, false},
		{"leagues", Planar, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := ParseUnits(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}
