package config

import "github.com/dmitrijs2005/cosmospt/internal/flagx"

func parseEnv(cfg *Config) {
	flagx.StringEnv(&cfg.ServerURL, "COSMOSCTL_SERVER")
	flagx.StringEnv(&cfg.DatabasePath, "COSMOSCTL_DB")
}
