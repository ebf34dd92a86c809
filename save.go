package geoweights

import (
	"context"
	"time"

	"github.com/hupe1980/geoweights/blobstore"
	"github.com/hupe1980/geoweights/gwt"
	"github.com/hupe1980/geoweights/weights"
)

// Save writes g as a GWT file. ids[i] is the external id of observation i;
// nil ids writes positions.
// A ".zst" or ".lz4" suffix compresses the file.
func Save(ctx context.Context, path string, g *weights.Graph, layer, variable string, ids []int64, optFns ...Option) error {
	o := applyOptions(optFns)

	start := time.Now()
	err := gwt.Save(path, g, layer, variable, ids)
	recordSave(ctx, o, path, g, start, err)
	return err
}

// SaveBlob writes g as a GWT blob to store.
func SaveBlob(ctx context.Context, store blobstore.BlobStore, name string, g *weights.Graph, layer, variable string, ids []int64, optFns ...Option) error {
	o := applyOptions(optFns)

	start := time.Now()
	err := gwt.SaveBlob(ctx, store, name, g, layer, variable, ids)
	recordSave(ctx, o, name, g, start, err)
	return err
}

func recordSave(ctx context.Context, o options, name string, g *weights.Graph, start time.Time, err error) {
	var edges int
	if err == nil {
		edges = g.NumEdges()
	}
	o.metricsCollector.RecordSave(edges, time.Since(start), err)
	o.logger.LogSave(ctx, name, edges, err)
}
