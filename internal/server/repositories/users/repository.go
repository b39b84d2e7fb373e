// Package users stores player documents. Every driver replaces the whole
// document on save; SaveIfVersion adds a compare-and-swap on the version.
package users

import (
	"context"

	"github.com/dmitrijs2005/cosmospt/internal/server/models"
)

type Repository interface {
	// Create inserts a new user, assigning an id when empty.
	// A duplicate name yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByID yields common.ErrorNotFound when no user has id.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByName yields common.ErrorNotFound when no user has name.
	GetByName(ctx context.Context, name string) (*models.User, error)
	// Save replaces the stored document unconditionally and bumps the version.
	Save(ctx context.Context, user *models.User) (*models.User, error)
	// SaveIfVersion replaces the stored document only when its version still
	// equals expected; otherwise it yields common.ErrVersionConflict.
	SaveIfVersion(ctx context.Context, user *models.User, expected int64) (*models.User, error)
}
