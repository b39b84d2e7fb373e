package repomanager

import (
	"context"

	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/catalog"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. State is lost
// on restart.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	catalog *catalog.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		catalog: catalog.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository     { return m.users }
func (m *MemoryRepositoryManager) Catalog() catalog.Repository { return m.catalog }

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error         { return nil }
