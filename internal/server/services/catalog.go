package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CatalogService serves the reference collections. Documents pass through
// untouched on List; the typed accessors decode them for the activities.
type CatalogService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCatalogService(m repomanager.RepositoryManager, logger logging.Logger) *CatalogService {
	return &CatalogService{repomanager: m, logger: logger.With("module", "catalog_service")}
}

// List returns every document of c.
func (s *CatalogService) List(ctx context.Context, c models.Collection) ([]json.RawMessage, error) {
	docs, err := s.repomanager.Catalog().List(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", c, err)
	}
	return docs, nil
}

// Replace swaps the content of c for docs and returns how many were
// stored. Each document must be a JSON object; one without "id" or "_id"
// gets a generated "_id".
func (s *CatalogService) Replace(ctx context.Context, c models.Collection, docs []json.RawMessage) (int, error) {
	normalized := make([]json.RawMessage, 0, len(docs))
	for i, doc := range docs {
		n, err := ensureID(doc)
		if err != nil {
			return 0, fmt.Errorf("%w: %s document %d: %v", common.ErrorValidation, c, i, err)
		}
		normalized = append(normalized, n)
	}

	if err := s.repomanager.Catalog().Replace(ctx, c, normalized); err != nil {
		return 0, fmt.Errorf("error replacing %s: %w", c, err)
	}

	s.logger.Info(ctx, "catalog replaced", "collection", string(c), "documents", len(normalized))
	return len(normalized), nil
}

func (s *CatalogService) Quiz(ctx context.Context, id string) (*models.Quiz, error) {
	q, err := find[models.Quiz](ctx, s, models.CollectionQuizzes, id)
	if err != nil {
		return nil, err
	}
	q.ID = id
	return q, nil
}

func (s *CatalogService) Mission(ctx context.Context, id string) (*models.Mission, error) {
	return find[models.Mission](ctx, s, models.CollectionMissions, id)
}

func (s *CatalogService) Destination(ctx context.Context, id string) (*models.Destination, error) {
	return find[models.Destination](ctx, s, models.CollectionDestinations, id)
}

func (s *CatalogService) Vehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return find[models.Vehicle](ctx, s, models.CollectionVehicles, id)
}

// find decodes the document of c whose id is id, or yields
// common.ErrorNotFound.
func find[T any](ctx context.Context, s *CatalogService, c models.Collection, id string) (*T, error) {
	docs, err := s.List(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if models.DocumentID(doc) != id {
			continue
		}
		v := new(T)
		if err := json.Unmarshal(doc, v); err != nil {
			return nil, fmt.Errorf("error decoding %s %q: %w", c, id, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%s %q: %w", c, id, common.ErrorNotFound)
}

func ensureID(doc json.RawMessage) (json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(doc, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("not an object")
	}
	if models.DocumentID(doc) != "" {
		return doc, nil
	}

	id, err := json.Marshal(uuid.NewString())
	if err != nil {
		return nil, err
	}
	obj["_id"] = id
	return json.Marshal(obj)
}
