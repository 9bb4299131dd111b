package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dverenev/priceadmin/internal/flagx"
	"github.com/dverenev/priceadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL             string         `json:"api_base_url"`
	RequestTimeout         timex.Duration `json:"request_timeout"`
	ProfileRefreshInterval timex.Duration `json:"profile_refresh_interval"`
	DatabasePath           string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flag. Absent flag means no JSON is loaded. Read or
// unmarshal errors panic; startup has nothing sensible to continue with.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.ProfileRefreshInterval.Duration != 0 {
		cfg.ProfileRefreshInterval = time.Duration(jc.ProfileRefreshInterval.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
