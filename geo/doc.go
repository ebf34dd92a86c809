// Package geo maps geographic coordinates onto the unit sphere and converts
// between chord lengths, great-circle angles and surface distances.
//
// Observations given as longitude/latitude pairs (degrees) are embedded as
// 3-D unit vectors. The straight-line (chord) distance between two embedded
// points is a strictly increasing function of their great-circle angle, so a
// Euclidean 3-D index ranks neighbours exactly as great-circle distance would.
//
// # Usage
//
//	pts, _ := geo.UnitSphere(lon, lat)
//	chord := geo.DistToChord(25, false) // 25 km as a unit-sphere chord
//	km := geo.ChordToDist(chord, false)
package geo
