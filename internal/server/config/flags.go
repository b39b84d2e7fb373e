package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/flagx"
)

var allowedFlags = []string{
	"-a", "-g", "-storage", "-d", "-m", "-mdb", "-s", "-t", "-o", "-require-auth",
	"-concurrency", "-retries", "-catalog", "-u", "-p", "-b", "-region", "-e", "-prefix", "-l",
}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            HTTP bind address (e.g., ":5000")
//	-g string            gRPC health bind address (e.g., ":50051")
//	-storage string      storage driver: postgres, mongo, memory
//	-d string            PostgreSQL DSN
//	-m string            MongoDB URI
//	-mdb string          MongoDB database name
//	-s string            JWT HMAC secret key
//	-t int               token validity, hours
//	-o string            allowed CORS origin
//	-require-auth        enforce bearer tokens on user mutations
//	-concurrency string  overwrite or optimistic
//	-retries int         max optimistic write retries
//	-catalog string      catalog source: store or s3
//	-u, -p string        S3 root user / password
//	-b string            S3 bucket name
//	-region string       S3 region
//	-e string            S3 base endpoint
//	-prefix string       S3 key prefix for catalog documents
//	-l string            log level
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and unknown
// arguments do not trip the flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], allowedFlags, "-require-auth")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.StorageDriver, "storage", config.StorageDriver, "storage driver (postgres, mongo, memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "mdb", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.StringVar(&config.AllowedOrigin, "o", config.AllowedOrigin, "allowed CORS origin")
	fs.BoolVar(&config.RequireAuth, "require-auth", config.RequireAuth, "require bearer tokens on user mutations")
	fs.StringVar(&config.ConcurrencyMode, "concurrency", config.ConcurrencyMode, "write mode (overwrite, optimistic)")
	fs.IntVar(&config.MaxWriteRetries, "retries", config.MaxWriteRetries, "max optimistic write retries")
	fs.StringVar(&config.CatalogSource, "catalog", config.CatalogSource, "catalog source (store, s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Prefix, "prefix", config.S3Prefix, "S3 key prefix")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
}
