package config

import (
	"github.com/spf13/pflag"
)

const (
	FlagConfig   = "config"
	FlagServer   = "server"
	FlagDatabase = "db"
	FlagTimeout  = "timeout"
	FlagRetries  = "retries"
)

// BindFlags registers the client flags on fs with the built-in defaults.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to JSON config file")
	fs.StringP(FlagServer, "s", d.ServerURL, "CosmosPT server URL")
	fs.String(FlagDatabase, d.DatabasePath, "local session database")
	fs.Duration(FlagTimeout, d.RequestTimeout, "HTTP request timeout")
	fs.Int(FlagRetries, d.FetchRetries, "fetch retries when the server is unavailable")
}

// ApplyFlags copies the flags the user explicitly set on fs into cfg.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(FlagServer) {
		if cfg.ServerURL, err = fs.GetString(FlagServer); err != nil {
			return err
		}
	}
	if fs.Changed(FlagDatabase) {
		if cfg.DatabasePath, err = fs.GetString(FlagDatabase); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(FlagRetries) {
		if cfg.FetchRetries, err = fs.GetInt(FlagRetries); err != nil {
			return err
		}
	}
	return nil
}
