package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by the console. Durations are whole
// seconds.
const (
	envAPIBaseURL      = "FUNDRY_API_URL"
	envPollInterval    = "FUNDRY_POLL_INTERVAL"
	envRequestTimeout  = "FUNDRY_REQUEST_TIMEOUT"
	envScrollTolerance = "FUNDRY_SCROLL_TOLERANCE"
)

// parseEnv overlays Config with values from the process environment. A
// .env file in the working directory is folded in first; its absence is
// not an error. Unparseable numeric values are ignored, keeping the
// previous layer's value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envPollInterval); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollInterval = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv(envScrollTolerance); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ScrollTolerance = n
		}
	}
}
