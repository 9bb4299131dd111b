package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080/api", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Minute, c.ProfileRefreshInterval)
	assert.Equal(t, "priceadmin.db", c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://pricing.example.com/api")
	t.Setenv("REQUEST_TIMEOUT", "25s")
	t.Setenv("PROFILE_REFRESH_INTERVAL", "15m")
	t.Setenv("DATABASE_PATH", "/tmp/settings.db")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "https://pricing.example.com/api", c.APIBaseURL)
	assert.Equal(t, 25*time.Second, c.RequestTimeout)
	assert.Equal(t, 15*time.Minute, c.ProfileRefreshInterval)
	assert.Equal(t, "/tmp/settings.db", c.DatabasePath)
}

func TestParseEnv_InvalidDurationIgnored(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}
