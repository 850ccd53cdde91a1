// ABOUTME: Tests for environment-driven configuration loading
// ABOUTME: Covers defaults, overrides, validation bounds and scheme handling

package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NULLPOINTER_API_URL",
		"NULLPOINTER_REQUEST_TIMEOUT",
		"NULLPOINTER_REFRESH_TIMEOUT",
		"NULLPOINTER_CACHE_TTL",
		"NULLPOINTER_STATE_DIR",
		"NULLPOINTER_GOOGLE_CLIENT_ID",
		"NULLPOINTER_GOOGLE_REDIRECT_URI",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 30 {
		t.Errorf("RequestTimeout = %d, want 30", cfg.RequestTimeout)
	}
	if cfg.RefreshTimeout != 15 {
		t.Errorf("RefreshTimeout = %d, want 15", cfg.RefreshTimeout)
	}
	if cfg.CacheTTL != 60 {
		t.Errorf("CacheTTL = %d, want 60", cfg.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NULLPOINTER_API_URL", "https://api.nullpointer.io")
	t.Setenv("NULLPOINTER_REQUEST_TIMEOUT", "10")
	t.Setenv("NULLPOINTER_CACHE_TTL", "5")
	t.Setenv("NULLPOINTER_STATE_DIR", "/tmp/np-state")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "https://api.nullpointer.io" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 10 {
		t.Errorf("RequestTimeout = %d, want 10", cfg.RequestTimeout)
	}
	if cfg.CacheTTL != 5 {
		t.Errorf("CacheTTL = %d, want 5", cfg.CacheTTL)
	}
	if !strings.HasSuffix(cfg.CookiePath(), "/np-state/cookies.json") {
		t.Errorf("CookiePath = %q", cfg.CookiePath())
	}
	if !strings.HasSuffix(cfg.DeviceIDPath(), "/np-state/device-id") {
		t.Errorf("DeviceIDPath = %q", cfg.DeviceIDPath())
	}
}

func TestLoad_SchemeAdded(t *testing.T) {
	clearEnv(t)
	t.Setenv("NULLPOINTER_API_URL", "backend.internal:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "http://backend.internal:8080" {
		t.Errorf("APIURL = %q, want scheme prepended", cfg.APIURL)
	}
}

func TestLoad_ValidationBounds(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"timeout zero", "NULLPOINTER_REQUEST_TIMEOUT", "0"},
		{"timeout too large", "NULLPOINTER_REQUEST_TIMEOUT", "7200"},
		{"refresh timeout negative", "NULLPOINTER_REFRESH_TIMEOUT", "-5"},
		{"cache ttl too large", "NULLPOINTER_CACHE_TTL", "99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NULLPOINTER_REQUEST_TIMEOUT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RequestTimeout != 30 {
		t.Errorf("RequestTimeout = %d, want default 30", cfg.RequestTimeout)
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:8080", "http://localhost:8080"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"https://api.example.com", "https://api.example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ensureScheme(tt.in); got != tt.want {
			t.Errorf("ensureScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
