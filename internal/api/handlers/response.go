// Package handlers contains HTTP request handlers
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// writeError reports err as JSON. Validation errors carry their code.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message}
	if err != nil {
		body["message"] = err.Error()
	}

	var werr *wayfinding.Error
	if errors.As(err, &werr) {
		body["code"] = werr.Code
	}

	writeJSON(w, status, body)
}

func parseIntParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// parseFloatParam returns ok=false when the parameter is absent and an
// error when it is present but not a number.
func parseFloatParam(r *http.Request, name string) (float64, bool, error) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return 0, false, nil
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil || !finite(val) {
		return 0, true, fmt.Errorf("invalid %s parameter", name)
	}
	return val, true, nil
}

// parseLatLng reads the lat and lng query parameters
func parseLatLng(r *http.Request) (wayfinding.Coordinate, error) {
	lat, hasLat, err := parseFloatParam(r, "lat")
	if err != nil {
		return wayfinding.Coordinate{}, err
	}
	lng, hasLng, err := parseFloatParam(r, "lng")
	if err != nil {
		return wayfinding.Coordinate{}, err
	}
	if !hasLat || !hasLng {
		return wayfinding.Coordinate{}, errors.New("lat and lng query parameters are required")
	}
	return wayfinding.Coordinate{Lat: lat, Lng: lng}, nil
}

// parsePoint reads a "lat,lng" pair
func parsePoint(s string) (wayfinding.Coordinate, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return wayfinding.Coordinate{}, fmt.Errorf("point %q must be lat,lng", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || !finite(lat) {
		return wayfinding.Coordinate{}, fmt.Errorf("point %q has an invalid latitude", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || !finite(lng) {
		return wayfinding.Coordinate{}, fmt.Errorf("point %q has an invalid longitude", s)
	}
	return wayfinding.Coordinate{Lat: lat, Lng: lng}, nil
}

// JSON has no NaN or Inf, so they never get past the query parser
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// splitList parses a comma-separated query parameter
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
