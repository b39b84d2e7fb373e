package config

import "time"

// Config holds runtime settings for cosmosctl.
//
// Fields:
//   - ServerURL: base URL of the CosmosPT REST API (without the /api suffix).
//   - DatabasePath: local SQLite file keeping the session and catalog snapshots.
//   - RequestTimeout: per-request HTTP timeout.
//   - FetchRetries / FetchBackoff: retry policy for catalog and profile fetches.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	FetchRetries   int
	FetchBackoff   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DatabasePath = "cosmosctl.db"
	c.RequestTimeout = 10 * time.Second
	c.FetchRetries = 3
	c.FetchBackoff = 200 * time.Millisecond
}

// LoadConfig constructs a Config from defaults, the JSON file at path (or
// $COSMOSCTL_CONFIG when path is empty) and the environment.
func LoadConfig(path string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, path)
	parseEnv(cfg)
	return cfg
}
