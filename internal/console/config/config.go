// Package config assembles runtime settings for the console. Values are
// layered: built-in defaults, then environment (including a .env file if
// present), then command-line flags. Later sources win.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the Fundry console.
//
// Units: intervals and timeouts are time.Duration; ScrollTolerance is in
// viewport rows (being within that many rows of the end counts as "at
// bottom" for the scroll policy).
type Config struct {
	APIBaseURL      string
	PollInterval    time.Duration
	RequestTimeout  time.Duration
	ScrollTolerance int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.PollInterval = 5 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.ScrollTolerance = 3
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
