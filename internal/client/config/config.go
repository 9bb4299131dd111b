package config

import "time"

// Config holds runtime settings for the price list admin CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - ProfileRefreshInterval: how often the session re-validates the profile.
//   - DatabasePath: path to the local SQLite settings database.
type Config struct {
	APIBaseURL             string
	RequestTimeout         time.Duration
	ProfileRefreshInterval time.Duration
	DatabasePath           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.ProfileRefreshInterval = 30 * time.Minute
	c.DatabasePath = "priceadmin.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
