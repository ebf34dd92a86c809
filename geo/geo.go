package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	// EarthRadiusKm is the mean earth radius used for surface distances.
	EarthRadiusKm = 6371.0
	// EarthRadiusMi is EarthRadiusKm expressed in statute miles.
	EarthRadiusMi = 3959.0
)

// ErrLengthMismatch reports coordinate arrays of different length.
type ErrLengthMismatch struct {
	Lon int
	Lat int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("coordinate length mismatch: %d longitudes, %d latitudes", e.Lon, e.Lat)
}

// UnitSphere projects (lon, lat) pairs in degrees onto the unit sphere.
// The i-th output point corresponds to the i-th input pair.
func UnitSphere(lon, lat []float64) ([]s2.Point, error) {
	if len(lon) != len(lat) {
		return nil, &ErrLengthMismatch{Lon: len(lon), Lat: len(lat)}
	}

	pts := make([]s2.Point, len(lon))
	for i := range lon {
		pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(lat[i], lon[i]))
	}
	return pts, nil
}

// ArcDistRad returns the great-circle angle in radians between two
// lon/lat pairs given in degrees.
func ArcDistRad(lon1, lat1, lon2, lat2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians()
}

// ArcDistKm returns the great-circle distance in kilometers.
func ArcDistKm(lon1, lat1, lon2, lat2 float64) float64 {
	return RadToKm(ArcDistRad(lon1, lat1, lon2, lat2))
}

// ArcDistMi returns the great-circle distance in miles.
func ArcDistMi(lon1, lat1, lon2, lat2 float64) float64 {
	return RadToMi(ArcDistRad(lon1, lat1, lon2, lat2))
}

// RadToKm converts a central angle to a surface distance in kilometers.
func RadToKm(rad float64) float64 { return rad * EarthRadiusKm }

// RadToMi converts a central angle to a surface distance in miles.
func RadToMi(rad float64) float64 { return rad * EarthRadiusMi }

// KmToRad converts kilometers on the earth surface to a central angle.
func KmToRad(km float64) float64 { return km / EarthRadiusKm }

// MiToRad converts miles on the earth surface to a central angle.
func MiToRad(mi float64) float64 { return mi / EarthRadiusMi }

// ChordToRad converts a unit-sphere chord length to the central angle it
// subtends. Chords longer than the sphere diameter saturate at pi.
func ChordToRad(chord float64) float64 {
	if chord <= 0 {
		return 0
	}
	// s1.ChordAngle stores the squared chord length.
	return s1.ChordAngleFromSquaredLength(chord * chord).Angle().Radians()
}

// RadToChord converts a central angle to a unit-sphere chord length.
// Angles of pi or more map to the diameter.
func RadToChord(rad float64) float64 {
	if rad <= 0 {
		return 0
	}
	return math.Sqrt(float64(s1.ChordAngleFromAngle(s1.Angle(rad))))
}

// ChordToDist converts a unit-sphere chord to a surface distance in
// kilometers, or miles when miles is set.
func ChordToDist(chord float64, miles bool) float64 {
	rad := ChordToRad(chord)
	if miles {
		return RadToMi(rad)
	}
	return RadToKm(rad)
}

// DistToChord converts a surface distance in kilometers (or miles) to the
// equivalent unit-sphere chord length.
func DistToChord(dist float64, miles bool) float64 {
	if miles {
		return RadToChord(MiToRad(dist))
	}
	return RadToChord(KmToRad(dist))
}

// Euclidean returns the planar distance between (x1, y1) and (x2, y2).
func Euclidean(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
