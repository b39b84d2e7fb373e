package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/cosmospt/internal/flagx"
)

// parseEnv overlays values from environment variables. PORT is honoured for
// platforms that only hand out a port number; COSMOSPT_HTTP_ADDR wins over it.
func parseEnv(config *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	flagx.StringEnv(&config.EndpointAddrHTTP, "COSMOSPT_HTTP_ADDR")
	flagx.StringEnv(&config.EndpointAddrGRPC, "COSMOSPT_GRPC_ADDR")
	flagx.StringEnv(&config.StorageDriver, "COSMOSPT_STORAGE")
	flagx.StringEnv(&config.DatabaseDSN, "DATABASE_DSN")
	flagx.StringEnv(&config.MongoURI, "MONGO_URI")
	flagx.StringEnv(&config.MongoDatabase, "MONGO_DATABASE")
	flagx.StringEnv(&config.SecretKey, "SECRET_KEY")
	flagx.StringEnv(&config.AllowedOrigin, "ALLOWED_ORIGIN")
	flagx.BoolEnv(&config.RequireAuth, "COSMOSPT_REQUIRE_AUTH")
	flagx.StringEnv(&config.ConcurrencyMode, "COSMOSPT_CONCURRENCY")
	flagx.StringEnv(&config.CatalogSource, "COSMOSPT_CATALOG_SOURCE")
	flagx.StringEnv(&config.S3RootUser, "S3_ROOT_USER")
	flagx.StringEnv(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	flagx.StringEnv(&config.S3Bucket, "S3_BUCKET")
	flagx.StringEnv(&config.S3Region, "S3_REGION")
	flagx.StringEnv(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	flagx.StringEnv(&config.S3Prefix, "S3_PREFIX")
	flagx.StringEnv(&config.LogLevel, "LOG_LEVEL")
}
