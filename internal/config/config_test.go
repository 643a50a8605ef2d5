package config_test

import (
	"testing"

	"github.com/Snape93/nutrition-sub006/internal/config"
)

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("NUTRI_REMOTE_URL", "http://localhost:9999")
	t.Setenv("NUTRI_CATALOG_API_KEY", "test-key")
	t.Setenv("NUTRI_DB", "/tmp/override.db")
	t.Setenv("NUTRI_TIMEOUT_SECONDS", "3")

	cfg := config.Load()
	if cfg.RemoteBaseURL != "http://localhost:9999" {
		t.Fatalf("remote url override lost: %s", cfg.RemoteBaseURL)
	}
	if cfg.CatalogAPIKey != "test-key" {
		t.Fatalf("api key override lost: %s", cfg.CatalogAPIKey)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Fatalf("db path override lost: %s", cfg.DBPath)
	}
	if cfg.TimeoutSeconds != 3 {
		t.Fatalf("timeout override lost: %d", cfg.TimeoutSeconds)
	}
}

func TestDefaultsWhenUnset(t *testing.T) {
	t.Setenv("NUTRI_REMOTE_URL", "")
	t.Setenv("NUTRI_TIMEOUT_SECONDS", "not-a-number")

	cfg := config.Load()
	if cfg.RemoteBaseURL == "" {
		t.Fatal("remote url should fall back to the default")
	}
	if cfg.TimeoutSeconds != 8 {
		t.Fatalf("unparseable timeout should keep the default, got %d", cfg.TimeoutSeconds)
	}
}
