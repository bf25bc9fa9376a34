package handlers

import (
	"context"

	"github.com/randytsao24/gatefinder/internal/models"
	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

// ShuttleProvider abstracts the live vehicle feed for testability.
type ShuttleProvider interface {
	Enabled() bool
	Waypoints(ctx context.Context) ([]wayfinding.Waypoint, error)
}

// AlertProvider abstracts the service alerts feed.
type AlertProvider interface {
	Enabled() bool
	Alerts(ctx context.Context, routes []string) ([]models.ServiceAlert, error)
}
