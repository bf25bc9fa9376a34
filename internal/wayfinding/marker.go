package wayfinding

import "strings"

// Category classifies a point of interest
type Category string

const (
	CategoryGate       Category = "gate"
	CategoryRestaurant Category = "restaurant"
	CategoryRestroom   Category = "restroom"
	CategoryShop       Category = "shop"
	CategoryLounge     Category = "lounge"
	CategoryOther      Category = "other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryGate,
		CategoryRestaurant,
		CategoryRestroom,
		CategoryShop,
		CategoryLounge,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGate, CategoryRestaurant, CategoryRestroom,
		CategoryShop, CategoryLounge, CategoryOther:
		return true
	}
	return false
}

// ParseCategory maps free text onto a category, case-insensitively.
// Unknown values come back as CategoryOther with ok=false.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return CategoryOther, false
	}
	return c, true
}

// Marker is a point of interest as seen from the current observer.
type Marker struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Icon      string   `json:"icon"`
	Distance  float64  `json:"distance"`  // meters from the observer
	Direction float64  `json:"direction"` // bearing from the observer, [0, 360)
	Floor     *int     `json:"floor,omitempty"`
	Category  Category `json:"category"`
}

// DisplayFloor is the floor to show for the marker; markers without one
// are shown on floor 1.
func (m Marker) DisplayFloor() int {
	if m.Floor == nil {
		return 1
	}
	return *m.Floor
}

// Waypoint is a positioned point of interest, independent of any observer.
type Waypoint struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon"`
	Category Category   `json:"category"`
	Position Coordinate `json:"position"`
	Floor    *int       `json:"floor,omitempty"`
}

// MarkerFrom derives the marker for w as seen from observer.
func (w Waypoint) MarkerFrom(observer Coordinate) Marker {
	return Marker{
		ID:        w.ID,
		Name:      w.Name,
		Icon:      w.Icon,
		Distance:  Distance(observer, w.Position),
		Direction: Bearing(observer, w.Position),
		Floor:     copyFloor(w.Floor),
		Category:  w.Category,
	}
}

// Locate derives a marker for every waypoint, preserving input order.
func Locate(observer Coordinate, waypoints []Waypoint) []Marker {
	markers := make([]Marker, len(waypoints))
	for i, w := range waypoints {
		markers[i] = w.MarkerFrom(observer)
	}
	return markers
}

// IntPtr returns a pointer to a copy of n, for optional floors.
func IntPtr(n int) *int {
	return &n
}

func copyFloor(f *int) *int {
	if f == nil {
		return nil
	}
	return IntPtr(*f)
}
