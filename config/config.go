// ABOUTME: Configuration loader for the NullPointer client
// ABOUTME: Loads settings from environment variables (with optional .env) and defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8080"

type Config struct {
	// API
	APIURL         string
	RequestTimeout int // seconds, default 30
	RefreshTimeout int // seconds, bounds the refresh call, default 15

	// Listing cache
	CacheTTL int // seconds, default 60

	// Local state (cookie jar, device ID). Empty disables persistence.
	StateDir string

	// Google OAuth
	GoogleClientID    string
	GoogleRedirectURI string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         ensureScheme(getEnv("NULLPOINTER_API_URL", defaultAPIURL)),
		RequestTimeout: getEnvInt("NULLPOINTER_REQUEST_TIMEOUT", 30),
		RefreshTimeout: getEnvInt("NULLPOINTER_REFRESH_TIMEOUT", 15),
		CacheTTL:       getEnvInt("NULLPOINTER_CACHE_TTL", 60),
		StateDir:       getEnv("NULLPOINTER_STATE_DIR", defaultStateDir()),

		GoogleClientID:    os.Getenv("NULLPOINTER_GOOGLE_CLIENT_ID"),
		GoogleRedirectURI: getEnv("NULLPOINTER_GOOGLE_REDIRECT_URI", "http://localhost:3000/auth/google-callback"),
	}

	for _, v := range []struct {
		name  string
		value int
	}{
		{"NULLPOINTER_REQUEST_TIMEOUT", cfg.RequestTimeout},
		{"NULLPOINTER_REFRESH_TIMEOUT", cfg.RefreshTimeout},
		{"NULLPOINTER_CACHE_TTL", cfg.CacheTTL},
	} {
		if v.value < 1 || v.value > 3600 {
			return nil, fmt.Errorf("%s must be between 1 and 3600, got %d", v.name, v.value)
		}
	}

	return cfg, nil
}

// CookiePath returns the refresh-cookie file location, or "" when
// persistence is disabled.
func (c *Config) CookiePath() string {
	if c.StateDir == "" {
		return ""
	}
	return filepath.Join(c.StateDir, "cookies.json")
}

// DeviceIDPath returns the device ID file location, or "" when
// persistence is disabled.
func (c *Config) DeviceIDPath() string {
	if c.StateDir == "" {
		return ""
	}
	return filepath.Join(c.StateDir, "device-id")
}

// defaultStateDir resolves the per-user state directory. Returns ""
// when the user config dir cannot be determined, which disables
// persistence rather than failing.
func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nullpointer")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// when the URL has no scheme. Local
// development backends are plain http; anything remote should be
// spelled out explicitly.
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
