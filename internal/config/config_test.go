package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8095" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("cache ttl = %v", cfg.CacheTTL)
	}
	if cfg.RefreshSpec != "@every 15m" {
		t.Errorf("refresh spec = %q", cfg.RefreshSpec)
	}
	if cfg.Postgres.Enabled() {
		t.Error("postgres should be disabled without env")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("OPENWEATHER_API_KEY", "k123")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("TRACKED_CITIES", "Paris, London ,  Tokyo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9001" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.OpenWeatherAPIKey != "k123" {
		t.Errorf("api key = %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v", cfg.CacheTTL)
	}
	want := []string{"Paris", "London", "Tokyo"}
	if len(cfg.TrackedCities) != len(want) {
		t.Fatalf("tracked cities = %v", cfg.TrackedCities)
	}
	for i := range want {
		if cfg.TrackedCities[i] != want[i] {
			t.Errorf("tracked city %d = %q, want %q", i, cfg.TrackedCities[i], want[i])
		}
	}
}

func TestLoadBadTTLFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "garbage")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("cache ttl = %v", cfg.CacheTTL)
	}
}
