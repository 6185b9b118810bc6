package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServicePort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.ServicePort)
	}
	if cfg.NotesDateFrom != "2000-01-01" || cfg.NotesDateTo != "2030-12-31" {
		t.Errorf("Expected all-time notes window, got %s..%s", cfg.NotesDateFrom, cfg.NotesDateTo)
	}
	if cfg.LegacyTimeout != 30*time.Second {
		t.Errorf("Expected default legacy timeout 30s, got %s", cfg.LegacyTimeout)
	}
	if cfg.ImportInterval != 2*time.Hour {
		t.Errorf("Expected default import interval 2h, got %s", cfg.ImportInterval)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEGACY_BASE_URL", "http://legacy.example.com/api")
	t.Setenv("LEGACY_TIMEOUT", "10s")
	t.Setenv("IMPORT_INTERVAL", "30m")

	cfg := Load()

	if cfg.LegacyBaseURL != "http://legacy.example.com/api" {
		t.Errorf("Expected env base URL, got %s", cfg.LegacyBaseURL)
	}
	if cfg.LegacyTimeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %s", cfg.LegacyTimeout)
	}
	if cfg.ImportInterval != 30*time.Minute {
		t.Errorf("Expected 30m interval, got %s", cfg.ImportInterval)
	}
}

func TestLoadIgnoresInvalidDuration(t *testing.T) {
	t.Setenv("LEGACY_TIMEOUT", "not-a-duration")

	cfg := Load()

	if cfg.LegacyTimeout != 30*time.Second {
		t.Errorf("Expected fallback to default 30s, got %s", cfg.LegacyTimeout)
	}
}
