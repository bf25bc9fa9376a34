package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "DATA_DIR", "CACHE_TTL_SECONDS", "HTTP_TIMEOUT_SECONDS", "SHUTTLE_FEED_URL", "SHUTTLE_ALERTS_URL", "STRICT_VALIDATION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" || cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.CacheTTL() != 120*time.Second || cfg.HTTPTimeout() != 10*time.Second {
		t.Errorf("durations = %v, %v", cfg.CacheTTL(), cfg.HTTPTimeout())
	}
	if !cfg.StrictValidation {
		t.Error("StrictValidation should default to true")
	}
	if cfg.WaypointsPath() != filepath.Join("data", "waypoints.csv") {
		t.Errorf("WaypointsPath = %s", cfg.WaypointsPath())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("ENV", "")
	os.Unsetenv("ENV")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=8088\nENV=production\nCACHE_TTL_SECONDS=999\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// godotenv.Load set these process-wide; undo it for later tests
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
	})

	if cfg.Port != "8088" || cfg.IsDevelopment() {
		t.Errorf("cfg = %+v", cfg)
	}
	// the process environment wins over the file
	if cfg.CacheTTLSeconds != 30 {
		t.Errorf("CacheTTLSeconds = %d, want 30", cfg.CacheTTLSeconds)
	}
}

func TestLoadBadValue(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "soon")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: "3000", CacheTTLSeconds: 1, HTTPTimeoutSeconds: 1}, false},
		{"port text", Config{Port: "web", CacheTTLSeconds: 1, HTTPTimeoutSeconds: 1}, true},
		{"port range", Config{Port: "70000", CacheTTLSeconds: 1, HTTPTimeoutSeconds: 1}, true},
		{"zero ttl", Config{Port: "3000", CacheTTLSeconds: 0, HTTPTimeoutSeconds: 1}, true},
		{"zero timeout", Config{Port: "3000", CacheTTLSeconds: 1, HTTPTimeoutSeconds: 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
