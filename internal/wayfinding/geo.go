// Package wayfinding turns positions and headings into navigable guidance.
//
// Every function in this package is pure: no I/O, no shared state, and no
// mutation of its inputs. Callers may use it from any number of goroutines.
package wayfinding

import "math"

// EarthRadiusMeters is the spherical-earth radius used by Distance.
const EarthRadiusMeters = 6371000

// Coordinate is a WGS84 position in degrees. Ranges are not checked here;
// see ValidateCoordinate for the opt-in check.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance in meters between a and b
// using the Haversine formula.
func Distance(a, b Coordinate) float64 {
	return DistanceLatLng(a.Lat, a.Lng, b.Lat, b.Lng)
}

// DistanceLatLng is Distance over raw degree arguments.
func DistanceLatLng(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLng := toRadians(lng2 - lng1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	// rounding can push a just outside [0, 1] and turn the roots into NaN
	a = math.Min(math.Max(a, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Bearing returns the initial bearing from one coordinate to another in
// degrees, in [0, 360), 0 being true north and increasing clockwise.
// Coincident points have no defined bearing; 0 is returned for them.
func Bearing(from, to Coordinate) float64 {
	if from == to {
		return 0
	}

	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	deltaLng := toRadians(to.Lng - from.Lng)

	y := math.Sin(deltaLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLng)

	theta := math.Atan2(y, x)

	return NormalizeBearing(theta*180/math.Pi + 360)
}

// NormalizeBearing folds any angle in degrees into [0, 360).
// Non-finite input yields 0.
func NormalizeBearing(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	b := math.Mod(deg, 360)
	if b < 0 {
		b += 360
	}
	// tiny negatives round up to exactly 360 after the addition
	if b >= 360 {
		b = 0
	}
	return b
}

// MetersToKilometers converts meters to kilometers
func MetersToKilometers(meters float64) float64 {
	return meters / 1000
}
