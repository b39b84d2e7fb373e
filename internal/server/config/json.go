package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cosmospt/internal/flagx"
	"github.com/dmitrijs2005/cosmospt/internal/timex"
)

// JsonConfig is the DTO used to read JSON configuration files. Duration
// fields accept both "168h" style strings and integer nanoseconds.
// Zero values leave the corresponding Config field untouched, so a file may
// set only the keys it cares about.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string         `json:"endpoint_addr_grpc"`
	StorageDriver         string         `json:"storage_driver"`
	DatabaseDSN           string         `json:"database_dsn"`
	MongoURI              string         `json:"mongo_uri"`
	MongoDatabase         string         `json:"mongo_database"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	AllowedOrigin         string         `json:"allowed_origin"`
	RequireAuth           *bool          `json:"require_auth"`
	ConcurrencyMode       string         `json:"concurrency_mode"`
	MaxWriteRetries       int            `json:"max_write_retries"`
	CatalogSource         string         `json:"catalog_source"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	S3Prefix              string         `json:"s3_prefix"`
	LogLevel              string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c/-config
// (or $COSMOSPT_CONFIG) into config. Nothing happens when no file is named.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	parseJsonFile(config, flagx.ConfigFilePath())
}

func parseJsonFile(config *Config, jsonConfigFile string) {
	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	setString(&config.AllowedOrigin, c.AllowedOrigin)
	if c.RequireAuth != nil {
		config.RequireAuth = *c.RequireAuth
	}
	setString(&config.ConcurrencyMode, c.ConcurrencyMode)
	if c.MaxWriteRetries > 0 {
		config.MaxWriteRetries = c.MaxWriteRetries
	}
	setString(&config.CatalogSource, c.CatalogSource)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
