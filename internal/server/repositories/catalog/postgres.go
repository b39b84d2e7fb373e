package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/dbx"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
)

// PostgresRepository reads and writes catalog_documents. Replace issues
// several statements; run it over a transaction handle to make it atomic.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, c models.Collection) ([]json.RawMessage, error) {
	query :=
		`SELECT doc FROM catalog_documents
		 WHERE collection = $1
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query, string(c))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return docs, nil
}

func (r *PostgresRepository) Replace(ctx context.Context, c models.Collection, docs []json.RawMessage) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM catalog_documents WHERE collection = $1`, string(c)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query :=
		`INSERT INTO catalog_documents (collection, position, doc_id, doc)
         VALUES ($1, $2, $3, $4)
		 `

	for i, doc := range docs {
		if _, err := r.db.ExecContext(ctx, query, string(c), i, models.DocumentID(doc), []byte(doc)); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}
