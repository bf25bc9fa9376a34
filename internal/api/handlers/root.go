package handlers

import (
	"net/http"
)

// Version is reported by the health and root endpoints
const Version = "1.0.0"

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "gatefinder",
		"description": "Airport wayfinding: distances, bearings and turn-by-turn hints to gates and amenities",
		"version":     Version,
		"endpoints": map[string]string{
			"GET /api":                                 "API information",
			"GET /health":                              "Health check",
			"GET /wayfinding/categories":               "Marker categories with catalog counts",
			"GET /wayfinding/markers":                  "Markers around lat/lng (category, within, limit)",
			"GET /wayfinding/markers/{id}/instruction": "Directions to one marker from lat/lng and heading",
			"GET /wayfinding/anchors":                  "Named positions (terminal filter)",
			"GET /wayfinding/anchors/nearest":          "Named position closest to lat/lng",
			"GET /wayfinding/anchors/{anchor}/markers": "Markers around a named position",
			"GET /wayfinding/terminals":                "Terminal names",
			"GET /wayfinding/distance":                 "Distance and bearing between two points",
			"GET /wayfinding/shuttles":                 "Live ground transport around lat/lng",
			"GET /wayfinding/shuttles/alerts":          "Active ground transport alerts",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check /api for available routes",
	})
}
