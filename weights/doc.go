// Package weights builds spatial weights graphs from a spatial index.
//
// Two relations are supported:
//
//   - KNN: each observation links to its k nearest other observations.
//   - Threshold: each observation links to every other observation within
//     a fixed distance.
//
// Either relation can be reweighted through a kernel (package kernel) with
// a fixed, automatically derived or adaptive bandwidth.
//
// # Units
//
// Index queries work in index space: planar coordinates, or chord length on
// the unit sphere for geographic indexes. Graph weights are reported in
// output units: planar units, or great-circle kilometers (miles when
// requested) for geographic indexes.
//
// # Self entries
//
// Observations are matched to themselves by index, never by zero distance,
// so coincident observations remain neighbours of each other. A row only
// links to its own observation when a kernel is requested.
package weights
