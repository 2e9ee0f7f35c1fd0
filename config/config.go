package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration, read from the environment
// once at startup. Engine defaults apply when requests omit an option.
type Config struct {
	Port        string
	FrontendURL string

	// AuthSecret enables bearer-token auth when set. The service also runs
	// standalone without it (local development, trusted networks).
	AuthSecret string

	RateLimit  int
	RateWindow time.Duration

	DefaultClusters      int
	DefaultContamination float64
	DefaultForecastDays  int
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:                 envString("PORT", "8080"),
		FrontendURL:          envString("FRONTEND_URL", "http://localhost:3000"),
		AuthSecret:           os.Getenv("AUTH_SECRET"),
		RateLimit:            envInt("RATE_LIMIT", 100),
		RateWindow:           time.Minute,
		DefaultClusters:      envInt("DEFAULT_CLUSTERS", 5),
		DefaultContamination: envFloat("DEFAULT_CONTAMINATION", 0.1),
		DefaultForecastDays:  envInt("DEFAULT_FORECAST_DAYS", 30),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
