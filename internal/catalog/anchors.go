package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/randytsao24/gatefinder/internal/models"
	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

// AnchorService manages named observer positions
type AnchorService struct {
	anchors map[string]models.Anchor
	mu      sync.RWMutex
	loaded  bool
}

// NewAnchorService creates a new anchor service
func NewAnchorService() *AnchorService {
	return &AnchorService{
		anchors: make(map[string]models.Anchor),
	}
}

// Load reads anchors from a JSON file
func (s *AnchorService) Load(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("reading anchors file: %w", err)
	}

	// The JSON is a map of anchor code -> location data
	var raw map[string]struct {
		Name     string  `json:"name"`
		Terminal string  `json:"terminal"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		Floor    *int    `json:"floor"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing anchors JSON: %w", err)
	}

	anchors := make(map[string]models.Anchor, len(raw))
	for code, a := range raw {
		anchors[code] = models.Anchor{
			Code:     code,
			Name:     a.Name,
			Terminal: a.Terminal,
			Lat:      a.Lat,
			Lng:      a.Lng,
			Floor:    a.Floor,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.anchors = anchors
	s.loaded = true
	return nil
}

// Get returns an anchor by its code
func (s *AnchorService) Get(code string) (models.Anchor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anchor, exists := s.anchors[code]
	return anchor, exists
}

// GetAll returns all anchors sorted by code
func (s *AnchorService) GetAll() []models.Anchor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Anchor, 0, len(s.anchors))
	for _, a := range s.anchors {
		result = append(result, a)
	}
	sortByCode(result)
	return result
}

// GetByTerminal returns all anchors in a terminal sorted by code
func (s *AnchorService) GetByTerminal(terminal string) []models.Anchor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Anchor{}
	for _, a := range s.anchors {
		if a.Terminal == terminal {
			result = append(result, a)
		}
	}
	sortByCode(result)
	return result
}

// Terminals returns the sorted list of unique terminal names
func (s *AnchorService) Terminals() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	terminals := []string{}
	for _, a := range s.anchors {
		if a.Terminal != "" && !seen[a.Terminal] {
			seen[a.Terminal] = true
			terminals = append(terminals, a.Terminal)
		}
	}
	sort.Strings(terminals)
	return terminals
}

// FindNearest returns the anchor closest to a point
func (s *AnchorService) FindNearest(at wayfinding.Coordinate) (models.Anchor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best     models.Anchor
		bestDist float64
		found    bool
	)
	for _, a := range s.anchors {
		d := wayfinding.Distance(at, Position(a))
		// ties go to the lower code so the answer doesn't depend on map order
		if !found || d < bestDist || (d == bestDist && a.Code < best.Code) {
			best, bestDist, found = a, d, true
		}
	}
	return best, found
}

// Count returns the number of loaded anchors
func (s *AnchorService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.anchors)
}

// IsLoaded returns true if data has been loaded
func (s *AnchorService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Position returns the anchor's coordinate
func Position(a models.Anchor) wayfinding.Coordinate {
	return wayfinding.Coordinate{Lat: a.Lat, Lng: a.Lng}
}

func sortByCode(anchors []models.Anchor) {
	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].Code < anchors[j].Code
	})
}
