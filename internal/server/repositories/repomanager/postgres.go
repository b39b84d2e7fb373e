package repomanager

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/dbx"
	"github.com/dmitrijs2005/cosmospt/internal/server/migrations"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories and exposes
// a schema migration hook.
type PostgresRepositoryManager struct {
	db *sql.DB
}

var sqlOpen = sql.Open

// NewPostgresRepositoryManager opens a pgx connection pool. The pool
// connects lazily; the first query surfaces connectivity errors.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return NewPostgresRepositoryManagerFromDB(db), nil
}

func NewPostgresRepositoryManagerFromDB(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// Users returns a users.Repository bound to the pool.
func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

// Catalog returns a catalog.Repository whose Replace runs in one transaction.
func (m *PostgresRepositoryManager) Catalog() catalog.Repository {
	return &txCatalog{db: m.db}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Close(_ context.Context) error {
	return m.db.Close()
}

type txCatalog struct {
	db *sql.DB
}

func (c *txCatalog) List(ctx context.Context, coll models.Collection) ([]json.RawMessage, error) {
	return catalog.NewPostgresRepository(c.db).List(ctx, coll)
}

func (c *txCatalog) Replace(ctx context.Context, coll models.Collection, docs []json.RawMessage) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return catalog.NewPostgresRepository(tx).Replace(ctx, coll, docs)
	})
}
