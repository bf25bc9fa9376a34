// Package main is the entry point for the gatefinder server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/randytsao24/gatefinder/internal/api"
	"github.com/randytsao24/gatefinder/internal/cache"
	"github.com/randytsao24/gatefinder/internal/catalog"
	"github.com/randytsao24/gatefinder/internal/config"
	"github.com/randytsao24/gatefinder/internal/shuttle"
	"github.com/randytsao24/gatefinder/internal/wayfinding"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	slog.SetDefault(newLogger(cfg))

	waypoints := catalog.NewWaypointService()
	if err := waypoints.Load(cfg.WaypointsPath()); err != nil {
		return fmt.Errorf("load waypoints: %w", err)
	}

	anchors := catalog.NewAnchorService()
	if err := anchors.Load(cfg.AnchorsPath()); err != nil {
		return fmt.Errorf("load anchors: %w", err)
	}

	slog.Info("catalog loaded",
		"waypoints", waypoints.Count(),
		"anchors", anchors.Count(),
	)

	located := cache.New[[]wayfinding.Marker](cfg.CacheTTL())
	defer located.Close()

	vehicles := shuttle.NewVehicleService(cfg.ShuttleFeedURL, cfg.HTTPTimeout(), cfg.CacheTTL())
	defer vehicles.Close()

	alerts := shuttle.NewAlertService(cfg.ShuttleAlertsURL, cfg.HTTPTimeout(), cfg.CacheTTL())
	defer alerts.Close()

	if !vehicles.Enabled() {
		slog.Warn("SHUTTLE_FEED_URL not set, shuttle endpoints disabled")
	}
	if !alerts.Enabled() {
		slog.Warn("SHUTTLE_ALERTS_URL not set, alert endpoints disabled")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, waypoints, anchors, located, vehicles, alerts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("gatefinder server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"strict_validation", cfg.StrictValidation,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLogger writes text in development and JSON everywhere else
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
