// Package geoweights builds spatial weights graphs from point coordinates.
//
// A graph links every observation to its k nearest neighbours or to every
// observation within a distance band, in planar space or on the sphere.
// Weights are raw distances, powers of distances, or kernel values. Graphs
// are written as GWT files.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	// Six nearest neighbours over lon/lat, distances in kilometers.
//	g, err := geoweights.KNN(6).
//	    Units(geoweights.Kilometers).
//	    Build(ctx, lon, lat)
//
//	// Every county within 50 miles, Gaussian-weighted.
//	g, err = geoweights.Threshold(50).
//	    Units(geoweights.Miles).
//	    Kernel(kernel.Gaussian).
//	    Build(ctx, lon, lat, geoweights.WithWorkers(4))
//
//	err = geoweights.Save(ctx, "counties.gwt", g, "counties", "FIPS", ids)
//
// # Choosing a Threshold
//
// An Estimator indexes the points once and answers calibration queries:
//
//	est, _ := geoweights.NewEstimator(lon, lat, geoweights.Kilometers)
//	nn, _ := est.NearestNeighborStats(ctx)      // nn.Max leaves no isolate
//	t, _ := est.ThresholdForAvgNeighbors(ctx, 8) // about 8 neighbours each
//
// # Configuration Files
//
// Builds can be described in YAML or JSON and loaded with LoadConfig:
//
//	cfg, _ := geoweights.LoadConfig("knn.yaml")
//	g, _ := cfg.Build(ctx, lon, lat)
//
// # Storage
//
// Save writes to the local filesystem. SaveBlob writes to any
// blobstore.BlobStore, including the S3 and MinIO stores in the blobstore
// subpackages.
package geoweights
