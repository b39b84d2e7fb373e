package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-storage", "mongo", "-d", "db",
			"-m", "mongodb://mongo:27017", "-mdb", "space", "-s", "secret", "-t", "24",
			"-o", "https://cosmos.example", "-require-auth", "-concurrency", "optimistic",
			"-retries", "3", "-catalog", "s3", "-u", "user", "-p", "password", "-b", "bucket",
			"-region", "us-west-1", "-e", "http://endpoint", "-prefix", "fixtures/", "-l", "debug",
		}, expected: &Config{
			EndpointAddrHTTP:      "127.0.0.1:8080",
			EndpointAddrGRPC:      "127.0.0.1:9090",
			StorageDriver:         "mongo",
			DatabaseDSN:           "db",
			MongoURI:              "mongodb://mongo:27017",
			MongoDatabase:         "space",
			SecretKey:             "secret",
			TokenValidityDuration: 24 * time.Hour,
			AllowedOrigin:         "https://cosmos.example",
			RequireAuth:           true,
			ConcurrencyMode:       "optimistic",
			MaxWriteRetries:       3,
			CatalogSource:         "s3",
			S3RootUser:            "user",
			S3RootPassword:        "password",
			S3Bucket:              "bucket",
			S3Region:              "us-west-1",
			S3BaseEndpoint:        "http://endpoint",
			S3Prefix:              "fixtures/",
			LogLevel:              "debug",
		}},
		{name: "unknown flags are filtered out", args: []string{"cmd", "-c", "cfg.json", "-x", "1", "-a", ":1"},
			expected: &Config{EndpointAddrHTTP: ":1"}},
		{name: "bad int panics", args: []string{"cmd", "-retries", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
