package api

import (
	"net/http"
	"time"

	"github.com/randytsao24/gatefinder/internal/api/handlers"
	"github.com/randytsao24/gatefinder/internal/cache"
	"github.com/randytsao24/gatefinder/internal/catalog"
	"github.com/randytsao24/gatefinder/internal/config"
	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	waypoints *catalog.WaypointService,
	anchors *catalog.AnchorService,
	located *cache.Cache[[]wayfinding.Marker],
	shuttles handlers.ShuttleProvider,
	alerts handlers.AlertProvider,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(waypoints, anchors)
	rootHandler := handlers.NewRootHandler()
	wayfindingHandler := handlers.NewWayfindingHandler(waypoints, anchors, located, cfg.StrictValidation)
	shuttleHandler := handlers.NewShuttleHandler(shuttles, alerts, cfg.StrictValidation)

	// Core routes
	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("/", rootHandler.NotFound)

	// Catalog markers
	mux.HandleFunc("GET /wayfinding/categories", wayfindingHandler.GetCategories)
	mux.HandleFunc("GET /wayfinding/markers", wayfindingHandler.GetMarkers)
	mux.HandleFunc("GET /wayfinding/markers/{id}/instruction", wayfindingHandler.GetInstruction)

	// Named positions
	mux.HandleFunc("GET /wayfinding/anchors", wayfindingHandler.GetAnchors)
	mux.HandleFunc("GET /wayfinding/anchors/nearest", wayfindingHandler.GetNearestAnchor)
	mux.HandleFunc("GET /wayfinding/anchors/{anchor}/markers", wayfindingHandler.GetAnchorMarkers)
	mux.HandleFunc("GET /wayfinding/terminals", wayfindingHandler.GetTerminals)

	mux.HandleFunc("GET /wayfinding/distance", wayfindingHandler.GetDistance)

	// Ground transport
	mux.HandleFunc("GET /wayfinding/shuttles", shuttleHandler.GetShuttles)
	mux.HandleFunc("GET /wayfinding/shuttles/alerts", shuttleHandler.GetAlerts)

	// Apply middleware stack
	handler := Chain(mux,
		RequestID,
		Recovery,
		Logging,
		CORS,
		Timeout(15*time.Second),
	)

	return handler
}
