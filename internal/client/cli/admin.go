package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dmitrijs2005/cosmospt/internal/flagx"
	"github.com/dmitrijs2005/cosmospt/internal/logging"
	serverconfig "github.com/dmitrijs2005/cosmospt/internal/server/config"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cosmospt/internal/server/services"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

// storageOptions select the server storage operator commands work on. Unset
// flags fall back to the server JSON config and environment.
type storageOptions struct {
	serverConfig  string
	storage       string
	dsn           string
	mongoURI      string
	mongoDatabase string
	catalogSource string
}

func (o *storageOptions) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&o.serverConfig, "server-config", "", "server JSON config file")
	fs.StringVar(&o.storage, "storage", "", "storage driver (postgres, mongo, memory)")
	fs.StringVar(&o.dsn, "dsn", "", "PostgreSQL DSN")
	fs.StringVar(&o.mongoURI, "mongo-uri", "", "MongoDB URI")
	fs.StringVar(&o.mongoDatabase, "mongo-db", "", "MongoDB database")
	fs.StringVar(&o.catalogSource, "catalog-source", "", "catalog source (store, s3)")
}

func (o *storageOptions) config() (cfg *serverconfig.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	path := o.serverConfig
	if path == "" {
		path = os.Getenv(flagx.ConfigFileEnv)
	}

	cfg = serverconfig.LoadConfigFile(path)
	for _, kv := range []struct {
		dst *string
		v   string
	}{
		{&cfg.StorageDriver, o.storage},
		{&cfg.DatabaseDSN, o.dsn},
		{&cfg.MongoURI, o.mongoURI},
		{&cfg.MongoDatabase, o.mongoDatabase},
		{&cfg.CatalogSource, o.catalogSource},
	} {
		if kv.v != "" {
			*kv.dst = kv.v
		}
	}
	return cfg, nil
}

// open connects to the storage and applies migrations.
func (o *storageOptions) open(ctx context.Context) (repomanager.RepositoryManager, *serverconfig.Config, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load server config", err)
	}

	rm, err := newRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitUnavailable, "open storage", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, nil, WrapExitError(ExitFailure, "run migrations", err)
	}
	return rm, cfg, nil
}

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &storageOptions{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply storage migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rm, cfg, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer rm.Close(ctx)

			return rootOpts.formatter(cmd).Success(map[string]string{"storage": cfg.StorageDriver}, func(w io.Writer) {
				okColor.Fprintf(w, "Migrations applied (%s)\n", cfg.StorageDriver)
			})
		},
	}
	opts.bind(cmd)
	return cmd
}

// Fixture is the YAML layout accepted by seed: collection name to documents.
type Fixture map[string][]map[string]any

// LoadFixture parses a YAML fixture into JSON documents per collection.
func LoadFixture(data []byte) (map[models.Collection][]json.RawMessage, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	out := make(map[models.Collection][]json.RawMessage, len(fx))
	for name, docs := range fx {
		c, ok := models.ParseCollection(name)
		if !ok {
			return nil, fmt.Errorf("unknown collection %q", name)
		}
		raw := make([]json.RawMessage, 0, len(docs))
		for i, d := range docs {
			b, err := json.Marshal(d)
			if err != nil {
				return nil, fmt.Errorf("%s document %d: %w", name, i, err)
			}
			raw = append(raw, b)
		}
		out[c] = raw
	}
	return out, nil
}

type seedResult struct {
	Collection string `json:"collection"`
	Documents  int    `json:"documents"`
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &storageOptions{}
	cmd := &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Replace catalog collections with the documents of a YAML fixture",
		Long: `Replace catalog collections with the documents of a YAML fixture.

Each top-level key names a collection (quizzes, missions, destinations,
vehicles, labs) and holds a list of documents. Collections missing from the
fixture are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := rootOpts.formatter(cmd)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "read fixture", err)
			}
			fixture, err := LoadFixture(data)
			if err != nil {
				return WrapExitError(ExitCommandError, "load fixture", err)
			}

			rm, _, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer rm.Close(ctx)

			level := "warn"
			if rootOpts.Verbose {
				level = "debug"
			}
			catalog := services.NewCatalogService(rm, logging.NewJSON(f.GetErrWriter(), level))

			names := make([]string, 0, len(fixture))
			for c := range fixture {
				names = append(names, string(c))
			}
			sort.Strings(names)

			results := make([]seedResult, 0, len(names))
			for _, name := range names {
				n, err := catalog.Replace(ctx, models.Collection(name), fixture[models.Collection(name)])
				if err != nil {
					return WrapExitError(ExitFailure, "seed "+name, err)
				}
				results = append(results, seedResult{Collection: name, Documents: n})
			}

			return f.Success(results, func(w io.Writer) {
				for _, r := range results {
					okColor.Fprintf(w, "Seeded %d %s\n", r.Documents, r.Collection)
				}
			})
		},
	}
	opts.bind(cmd)
	return cmd
}
