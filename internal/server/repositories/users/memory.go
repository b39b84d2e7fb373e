package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Values are cloned on the
// way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*models.User
	byName map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*models.User),
		byName: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.Name]; ok {
		return nil, common.ErrorConflict
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrorConflict
	}
	user.Version = 1

	r.byID[user.ID] = user.Clone()
	r.byName[user.Name] = user.ID
	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) Save(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.store(user, cur.Version), nil
}

func (r *MemoryRepository) SaveIfVersion(_ context.Context, user *models.User, expected int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok || cur.Version != expected {
		return nil, common.ErrVersionConflict
	}
	return r.store(user, cur.Version), nil
}

func (r *MemoryRepository) store(user *models.User, current int64) *models.User {
	user.Version = current + 1
	r.byID[user.ID] = user.Clone()
	return user
}
