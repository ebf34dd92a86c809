// Package index provides the spatial index abstraction used by the weights
// builders and estimators.
//
// An index holds one Entry per observation. Entry IDs are the observation's
// 0-based position and are the only join key between the index, the weights
// graph and caller-supplied identifiers.
//
// # Spaces
//
//   - SpacePlanar: 2-D Cartesian coordinates, Euclidean distance
//   - SpaceSphere: 3-D unit-sphere embedding of lon/lat, chord distance
//
// # Backends
//
// Backends register themselves with Register from an init function:
//
//   - BackendRTree: R-tree (package rtree, default)
//   - BackendKDTree: k-d tree (package kdtree)
//
// Import the backend packages for their side effect before calling New.
package index
