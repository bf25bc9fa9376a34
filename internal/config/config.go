// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port               string `env:"PORT" envDefault:"3000"`
	Env                string `env:"ENV" envDefault:"development"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	DataDir            string `env:"DATA_DIR" envDefault:"data"`
	CacheTTLSeconds    int    `env:"CACHE_TTL_SECONDS" envDefault:"120"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"10"`
	ShuttleFeedURL     string `env:"SHUTTLE_FEED_URL"`
	ShuttleAlertsURL   string `env:"SHUTTLE_ALERTS_URL"`
	StrictValidation   bool   `env:"STRICT_VALIDATION" envDefault:"true"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// CacheTTL is the lifetime of cached feed and marker results.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// HTTPTimeout bounds outbound feed requests.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// WaypointsPath is the waypoint catalog CSV.
func (c *Config) WaypointsPath() string {
	return filepath.Join(c.DataDir, "waypoints.csv")
}

// AnchorsPath is the anchors JSON.
func (c *Config) AnchorsPath() string {
	return filepath.Join(c.DataDir, "anchors.json")
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", c.CacheTTLSeconds)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}
