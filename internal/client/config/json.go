package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cosmospt/internal/timex"
)

const ConfigFileEnv = "COSMOSCTL_CONFIG"

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	FetchRetries   *int           `json:"fetch_retries"`
	FetchBackoff   timex.Duration `json:"fetch_backoff"`
}

// parseJson overlays cfg with values from the JSON file at path. Missing keys
// keep their current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config, path string) {
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.FetchRetries != nil {
		cfg.FetchRetries = *jc.FetchRetries
	}
	if jc.FetchBackoff.Duration > 0 {
		cfg.FetchBackoff = jc.FetchBackoff.Duration
	}
}
