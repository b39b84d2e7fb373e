// Package catalog stores the read-mostly reference collections (quizzes,
// missions, destinations, vehicles, labs) as opaque JSON documents.
package catalog

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/cosmospt/internal/server/models"
)

type Repository interface {
	// List returns every document of c in stored order. An empty collection
	// yields an empty, non-nil slice.
	List(ctx context.Context, c models.Collection) ([]json.RawMessage, error)
	// Replace swaps the whole content of c for docs.
	Replace(ctx context.Context, c models.Collection, docs []json.RawMessage) error
}
