// Package repomanager opens the configured storage backend and vends the
// repositories built on it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/server/config"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Catalog() catalog.Repository
	RunMigrations(ctx context.Context) error
	Close(ctx context.Context) error
}

var newS3Client = func(ctx context.Context, s catalog.S3Settings) (catalog.S3API, error) {
	return catalog.NewS3Client(ctx, s)
}

// New opens the backend named by cfg.StorageDriver. With
// cfg.CatalogSource == "s3" catalog reads and writes go to object storage
// while users stay on the backend.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		m, err = NewPostgresRepositoryManager(cfg.DatabaseDSN)
	case config.StorageDriverMongo:
		m, err = NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StorageDriverMemory:
		m = NewMemoryRepositoryManager()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	switch cfg.CatalogSource {
	case config.CatalogSourceStore, "":
		return m, nil
	case config.CatalogSourceS3:
		client, err := newS3Client(ctx, catalog.S3Settings{
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			_ = m.Close(ctx)
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return &withCatalog{RepositoryManager: m, catalog: catalog.NewS3Repository(client, cfg.S3Bucket, cfg.S3Prefix)}, nil
	default:
		_ = m.Close(ctx)
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

// withCatalog overrides the catalog of an underlying manager.
type withCatalog struct {
	RepositoryManager
	catalog catalog.Repository
}

func (m *withCatalog) Catalog() catalog.Repository {
	return m.catalog
}
