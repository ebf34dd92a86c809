// Package estimate calibrates distance thresholds for weights builds.
//
// All estimators read the index only. Distances and thresholds are in
// index space for planar indexes; geographic indexes take and return
// thresholds as unit-sphere chord length, while distance statistics are
// reported in radians.
//
// Randomised estimators draw from Options.Rand. Pass a seeded generator
// for reproducible results; a nil Rand uses a fresh time-seeded generator
// per call. A *rand.Rand must not be shared by concurrent calls.
package estimate
