// Package testutil provides testing utilities for geoweights.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point sets and computing exact
// neighbour sets by brute force.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	x, y := rng.Points(1000, 100) // uniform in [0, 100)²
//	lon, lat := rng.LonLat(1000)  // uniform lon/lat, poles excluded
//
// # Ground Truth
//
//	want := testutil.Within(len(x), testutil.Planar(x, y), th)
//	d := testutil.NearestDistance(len(x), testutil.Planar(x, y))
package testutil
