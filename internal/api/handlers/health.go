package handlers

import (
	"net/http"
	"time"

	"github.com/randytsao24/gatefinder/internal/catalog"
)

type HealthHandler struct {
	startTime time.Time
	waypoints *catalog.WaypointService
	anchors   *catalog.AnchorService
}

func NewHealthHandler(waypoints *catalog.WaypointService, anchors *catalog.AnchorService) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		waypoints: waypoints,
		anchors:   anchors,
	}
}

// Health reports OK once the catalog is loaded, 503 before that
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, code := "OK", http.StatusOK
	if !h.waypoints.IsLoaded() {
		status, code = "LOADING", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"uptime":    time.Since(h.startTime).String(),
		"catalog": map[string]any{
			"waypoints": h.waypoints.Count(),
			"anchors":   h.anchors.Count(),
		},
	})
}
