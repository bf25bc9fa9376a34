package wayfinding

import (
	"cmp"
	"slices"
)

// FilterByCategory returns the markers of category c in their original order.
func FilterByCategory(markers []Marker, c Category) []Marker {
	result := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if m.Category == c {
			result = append(result, m)
		}
	}
	return result
}

// SortByDistance returns a copy of markers ordered nearest first.
// Markers at equal distance keep their input order.
func SortByDistance(markers []Marker) []Marker {
	sorted := slices.Clone(markers)
	if sorted == nil {
		sorted = []Marker{}
	}
	slices.SortStableFunc(sorted, func(a, b Marker) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return sorted
}

// Nearby returns the markers no farther than maxDistance meters, inclusive,
// in their original order. A negative maxDistance matches nothing.
func Nearby(markers []Marker, maxDistance float64) []Marker {
	result := make([]Marker, 0, len(markers))
	if maxDistance < 0 {
		return result
	}
	for _, m := range markers {
		if m.Distance <= maxDistance {
			result = append(result, m)
		}
	}
	return result
}

// Closest returns the limit nearest markers. limit <= 0 returns them all.
func Closest(markers []Marker, limit int) []Marker {
	sorted := SortByDistance(markers)
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// Find returns the marker with the given ID.
func Find(markers []Marker, id string) (Marker, bool) {
	for _, m := range markers {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}
