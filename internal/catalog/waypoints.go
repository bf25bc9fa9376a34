// Package catalog holds the airport's points of interest and named anchors
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

// waypoints.csv columns
const (
	colID = iota
	colName
	colIcon
	colCategory
	colLat
	colLng
	colFloor
	minColumns = colLng + 1
)

// WaypointService manages the waypoint catalog. Readers always get a copy,
// so a snapshot handed out once never changes underneath its holder.
type WaypointService struct {
	waypoints []wayfinding.Waypoint
	mu        sync.RWMutex
	loaded    bool
}

// NewWaypointService creates a new waypoint service
func NewWaypointService() *WaypointService {
	return &WaypointService{}
}

// Load reads waypoints from a CSV file, replacing the current catalog
func (s *WaypointService) Load(filepath string) error {
	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("opening waypoints file: %w", err)
	}
	defer file.Close()

	return s.LoadFrom(file)
}

// LoadFrom reads waypoints in CSV form. The first row is a header.
// Rows without an ID get a generated one; rows with fewer than six
// columns or unparseable coordinates are skipped.
func (s *WaypointService) LoadFrom(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) < 2 {
		return fmt.Errorf("waypoints file has no data rows")
	}

	var waypoints []wayfinding.Waypoint
	for _, record := range records[1:] {
		w, ok := parseWaypoint(record)
		if !ok {
			continue
		}
		waypoints = append(waypoints, w)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.waypoints = waypoints
	s.loaded = true
	return nil
}

func parseWaypoint(record []string) (wayfinding.Waypoint, bool) {
	if len(record) < minColumns {
		return wayfinding.Waypoint{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[colLat]), 64)
	if err != nil {
		return wayfinding.Waypoint{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(record[colLng]), 64)
	if err != nil {
		return wayfinding.Waypoint{}, false
	}

	id := strings.TrimSpace(record[colID])
	if id == "" {
		id = uuid.NewString()
	}

	// unknown categories fall back to other
	category, _ := wayfinding.ParseCategory(record[colCategory])

	var floor *int
	if len(record) > colFloor {
		if f, err := strconv.Atoi(strings.TrimSpace(record[colFloor])); err == nil {
			floor = wayfinding.IntPtr(f)
		}
	}

	return wayfinding.Waypoint{
		ID:       id,
		Name:     strings.TrimSpace(record[colName]),
		Icon:     strings.TrimSpace(record[colIcon]),
		Category: category,
		Position: wayfinding.Coordinate{Lat: lat, Lng: lng},
		Floor:    floor,
	}, true
}

// Snapshot returns a copy of every waypoint in catalog order
func (s *WaypointService) Snapshot() []wayfinding.Waypoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]wayfinding.Waypoint, len(s.waypoints))
	for i, w := range s.waypoints {
		result[i] = cloneWaypoint(w)
	}
	return result
}

// MarkersFrom derives markers for the whole catalog as seen from observer
func (s *WaypointService) MarkersFrom(observer wayfinding.Coordinate) []wayfinding.Marker {
	return wayfinding.Locate(observer, s.Snapshot())
}

// GetByID returns a waypoint by its ID
func (s *WaypointService) GetByID(id string) (wayfinding.Waypoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.waypoints {
		if w.ID == id {
			return cloneWaypoint(w), true
		}
	}
	return wayfinding.Waypoint{}, false
}

func cloneWaypoint(w wayfinding.Waypoint) wayfinding.Waypoint {
	if w.Floor != nil {
		w.Floor = wayfinding.IntPtr(*w.Floor)
	}
	return w
}

// CountByCategory returns how many waypoints each category holds
func (s *WaypointService) CountByCategory() map[wayfinding.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[wayfinding.Category]int)
	for _, w := range s.waypoints {
		counts[w.Category]++
	}
	return counts
}

// Count returns the number of loaded waypoints
func (s *WaypointService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.waypoints)
}

// IsLoaded returns true if data has been loaded
func (s *WaypointService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
