package handlers

import (
	"net/http"

	"github.com/randytsao24/gatefinder/internal/cache"
	"github.com/randytsao24/gatefinder/internal/catalog"
	"github.com/randytsao24/gatefinder/internal/models"
	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

const (
	defaultLimit = 0 // all markers
	maxLimit     = 100
)

// markerView is a marker with its display defaults applied
type markerView struct {
	wayfinding.Marker
	DisplayFloor int    `json:"display_floor"`
	DistanceText string `json:"distance_text"`
}

func viewMarkers(markers []wayfinding.Marker) []markerView {
	views := make([]markerView, len(markers))
	for i, m := range markers {
		views[i] = markerView{
			Marker:       m,
			DisplayFloor: m.DisplayFloor(),
			DistanceText: wayfinding.FormatDistance(m.Distance),
		}
	}
	return views
}

// markerQuery is the optional narrowing shared by marker endpoints
type markerQuery struct {
	category *wayfinding.Category
	within   *float64
	limit    int
}

type WayfindingHandler struct {
	waypoints *catalog.WaypointService
	anchors   *catalog.AnchorService
	located   *cache.Cache[[]wayfinding.Marker]
	strict    bool
}

// NewWayfindingHandler creates the marker handlers. With strict set,
// out-of-range coordinates, headings, radii and unknown categories are
// rejected with 400 instead of producing degenerate results.
func NewWayfindingHandler(waypoints *catalog.WaypointService, anchors *catalog.AnchorService, located *cache.Cache[[]wayfinding.Marker], strict bool) *WayfindingHandler {
	return &WayfindingHandler{
		waypoints: waypoints,
		anchors:   anchors,
		located:   located,
		strict:    strict,
	}
}

// GetMarkers returns catalog markers around lat/lng, nearest first
func (h *WayfindingHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	observer, ok := h.observer(w, r)
	if !ok {
		return
	}

	q, ok := h.markerQuery(w, r)
	if !ok {
		return
	}

	markers := q.apply(h.waypoints.MarkersFrom(observer))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"observer": observer,
		"markers":  viewMarkers(markers),
		"count":    len(markers),
	})
}

// GetAnchorMarkers returns catalog markers around a named anchor
func (h *WayfindingHandler) GetAnchorMarkers(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("anchor")

	anchor, found := h.anchors.Get(code)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Anchor not found",
			"message": "Anchor " + code + " is not in the catalog",
		})
		return
	}

	q, ok := h.markerQuery(w, r)
	if !ok {
		return
	}

	// anchors never move, so their located catalog can be reused
	at := catalog.Position(anchor)
	key := cache.CoordKey("anchor:"+anchor.Code, at.Lat, at.Lng)
	located, _ := h.located.GetOrLoad(key, func() ([]wayfinding.Marker, error) {
		return h.waypoints.MarkersFrom(at), nil
	})
	markers := q.apply(located)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"anchor":  anchor,
		"markers": viewMarkers(markers),
		"count":   len(markers),
	})
}

// GetInstruction returns guidance to one waypoint from lat/lng and heading
func (h *WayfindingHandler) GetInstruction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	waypoint, found := h.waypoints.GetByID(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Marker not found",
			"message": "Marker " + id + " is not in the catalog",
		})
		return
	}

	observer, ok := h.observer(w, r)
	if !ok {
		return
	}

	heading, hasHeading, err := parseFloatParam(r, "heading")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid heading", err)
		return
	}
	if !hasHeading {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "heading query parameter is required",
		})
		return
	}
	if h.strict {
		if err := wayfinding.ValidateHeading(heading); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid heading", err)
			return
		}
	}

	marker := waypoint.MarkerFrom(observer)
	guidance := wayfinding.Guide(marker, heading)
	if r.URL.Query().Get("mode") == "reference" {
		guidance.Relative = marker.Direction - heading
		guidance.Phrase = wayfinding.DirectionPhrase(guidance.Relative)
		guidance.Instruction = wayfinding.ReferenceInstruction(marker, heading)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"observer": observer,
		"heading":  heading,
		"marker":   viewMarkers([]wayfinding.Marker{marker})[0],
		"guidance": guidance,
	})
}

// GetCategories lists the categories with how many waypoints each holds
func (h *WayfindingHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	counts := h.waypoints.CountByCategory()

	categories := make([]map[string]any, 0, len(wayfinding.Categories()))
	for _, c := range wayfinding.Categories() {
		categories = append(categories, map[string]any{
			"category": c,
			"count":    counts[c],
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// GetDistance returns distance and bearing between two points
func (h *WayfindingHandler) GetDistance(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "from and to query parameters are required",
		})
		return
	}

	from, err := parsePoint(fromStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from parameter", err)
		return
	}
	to, err := parsePoint(toStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to parameter", err)
		return
	}
	if h.strict {
		for _, c := range []wayfinding.Coordinate{from, to} {
			if err := wayfinding.ValidateCoordinate(c); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid coordinate", err)
				return
			}
		}
	}

	meters := wayfinding.Distance(from, to)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"from":            from,
		"to":              to,
		"distance_meters": meters,
		"distance_text":   wayfinding.FormatDistance(meters),
		"bearing":         wayfinding.Bearing(from, to),
	})
}

// GetAnchors returns all anchors, optionally filtered by terminal
func (h *WayfindingHandler) GetAnchors(w http.ResponseWriter, r *http.Request) {
	var anchors []models.Anchor
	if terminal := r.URL.Query().Get("terminal"); terminal != "" {
		anchors = h.anchors.GetByTerminal(terminal)
	} else {
		anchors = h.anchors.GetAll()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(anchors),
		"anchors": anchors,
	})
}

// GetNearestAnchor returns the anchor closest to lat/lng
func (h *WayfindingHandler) GetNearestAnchor(w http.ResponseWriter, r *http.Request) {
	observer, ok := h.observer(w, r)
	if !ok {
		return
	}

	anchor, found := h.anchors.FindNearest(observer)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "No anchors loaded",
			"message": "The anchor catalog is empty",
		})
		return
	}

	meters := wayfinding.Distance(observer, catalog.Position(anchor))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"observer":        observer,
		"anchor":          anchor,
		"distance_meters": meters,
		"distance_text":   wayfinding.FormatDistance(meters),
	})
}

// GetTerminals returns all terminal names
func (h *WayfindingHandler) GetTerminals(w http.ResponseWriter, r *http.Request) {
	terminals := h.anchors.Terminals()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"count":     len(terminals),
		"terminals": terminals,
	})
}

// observer parses lat/lng, writing the 400 itself on failure
func (h *WayfindingHandler) observer(w http.ResponseWriter, r *http.Request) (wayfinding.Coordinate, bool) {
	observer, err := parseLatLng(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return wayfinding.Coordinate{}, false
	}
	if h.strict {
		if err := wayfinding.ValidateCoordinate(observer); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid position", err)
			return wayfinding.Coordinate{}, false
		}
	}
	return observer, true
}

func (h *WayfindingHandler) markerQuery(w http.ResponseWriter, r *http.Request) (markerQuery, bool) {
	q := markerQuery{limit: parseIntParam(r, "limit", defaultLimit, 0, maxLimit)}

	if raw := r.URL.Query().Get("category"); raw != "" {
		// unknown values are kept verbatim in lenient mode and match nothing
		c, known := wayfinding.ParseCategory(raw)
		if !known {
			c = wayfinding.Category(raw)
		}
		if h.strict {
			parsed, err := wayfinding.ValidateCategory(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid category", err)
				return q, false
			}
			c = parsed
		}
		q.category = &c
	}

	within, hasWithin, err := parseFloatParam(r, "within")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid within", err)
		return q, false
	}
	if hasWithin {
		if h.strict {
			if err := wayfinding.ValidateRadius(within); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid within", err)
				return q, false
			}
		}
		q.within = &within
	}

	return q, true
}

func (q markerQuery) apply(markers []wayfinding.Marker) []wayfinding.Marker {
	if q.category != nil {
		markers = wayfinding.FilterByCategory(markers, *q.category)
	}
	if q.within != nil {
		markers = wayfinding.Nearby(markers, *q.within)
	}
	return wayfinding.Closest(markers, q.limit)
}
