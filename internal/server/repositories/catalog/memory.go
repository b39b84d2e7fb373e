package catalog

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/cosmospt/internal/server/models"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[models.Collection][]json.RawMessage
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[models.Collection][]json.RawMessage)}
}

func (r *MemoryRepository) List(_ context.Context, c models.Collection) ([]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append(make([]json.RawMessage, 0, len(r.docs[c])), r.docs[c]...), nil
}

func (r *MemoryRepository) Replace(_ context.Context, c models.Collection, docs []json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[c] = append([]json.RawMessage(nil), docs...)
	return nil
}
