// Package config loads runtime configuration for the cosmosctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by --config or $COSMOSCTL_CONFIG.
//  3. Environment variables (COSMOSCTL_SERVER, COSMOSCTL_DB, ...).
//  4. Command-line flags bound with BindFlags; only flags the user actually
//     set override earlier values (see ApplyFlags).
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "database_path": "cosmosctl.db",
//	  "request_timeout": "10s",
//	  "fetch_retries": 3,
//	  "fetch_backoff": "200ms"
//	}
package config
