package wayfinding

import (
	"fmt"
	"math"
)

// The engine itself accepts any float. The validators below are for
// callers that want to reject physically meaningless input up front.

// ValidateCoordinate checks that c is a finite point on the globe.
func ValidateCoordinate(c Coordinate) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return newError(CodeInvalidLatitude, fmt.Sprintf("latitude %v is outside [-90, 90]", c.Lat))
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return newError(CodeInvalidLongitude, fmt.Sprintf("longitude %v is outside [-180, 180]", c.Lng))
	}
	return nil
}

// ValidateHeading checks that heading is a finite compass angle in [0, 360).
func ValidateHeading(heading float64) error {
	if math.IsNaN(heading) || heading < 0 || heading >= 360 {
		return newError(CodeInvalidHeading, fmt.Sprintf("heading %v is outside [0, 360)", heading))
	}
	return nil
}

// ValidateRadius checks that a nearby threshold is non-negative and finite.
func ValidateRadius(meters float64) error {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return newError(CodeInvalidRadius, fmt.Sprintf("radius %v must be a non-negative number of meters", meters))
	}
	return nil
}

// ValidateCategory parses s and fails for anything outside the enumeration.
func ValidateCategory(s string) (Category, error) {
	c, ok := ParseCategory(s)
	if !ok {
		return "", newError(CodeUnknownCategory, fmt.Sprintf("unknown category %q", s))
	}
	return c, nil
}
