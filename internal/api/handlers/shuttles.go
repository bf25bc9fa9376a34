package handlers

import (
	"net/http"

	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

const (
	defaultShuttleLimit = 10
	maxShuttleLimit     = 50
)

type ShuttleHandler struct {
	vehicles ShuttleProvider
	alerts   AlertProvider
	strict   bool
}

func NewShuttleHandler(vehicles ShuttleProvider, alerts AlertProvider, strict bool) *ShuttleHandler {
	return &ShuttleHandler{
		vehicles: vehicles,
		alerts:   alerts,
		strict:   strict,
	}
}

// GetShuttles returns live vehicles around lat/lng as markers, nearest first
func (h *ShuttleHandler) GetShuttles(w http.ResponseWriter, r *http.Request) {
	if !h.vehicles.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   "Shuttle feed unavailable",
			"message": "SHUTTLE_FEED_URL is not configured",
		})
		return
	}

	observer, err := parseLatLng(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return
	}
	if h.strict {
		if err := wayfinding.ValidateCoordinate(observer); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid position", err)
			return
		}
	}

	waypoints, err := h.vehicles.Waypoints(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch shuttle positions", err)
		return
	}

	limit := parseIntParam(r, "limit", defaultShuttleLimit, 1, maxShuttleLimit)
	markers := wayfinding.Closest(wayfinding.Locate(observer, waypoints), limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"observer": observer,
		"shuttles": viewMarkers(markers),
		"count":    len(markers),
	})
}

// GetAlerts returns active ground-transport alerts, optionally by route
func (h *ShuttleHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if !h.alerts.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   "Alerts feed unavailable",
			"message": "SHUTTLE_ALERTS_URL is not configured",
		})
		return
	}

	routes := splitList(r.URL.Query().Get("route"))
	alerts, err := h.alerts.Alerts(r.Context(), routes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch alerts", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(alerts),
		"alerts":  alerts,
	})
}
