package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.PollInterval)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 3, cfg.ScrollTolerance)
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv(envAPIBaseURL, "https://api.fundry.example")
	t.Setenv(envPollInterval, "10")
	t.Setenv(envScrollTolerance, "0")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "https://api.fundry.example", cfg.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.PollInterval)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 0, cfg.ScrollTolerance)
}

func TestParseEnv_GarbageIgnored(t *testing.T) {
	t.Setenv(envPollInterval, "soon")
	t.Setenv(envRequestTimeout, "-5")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, 5*time.Second, cfg.PollInterval)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
