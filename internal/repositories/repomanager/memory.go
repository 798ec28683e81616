package repomanager

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/credentials"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory; contents are
// lost on exit.
type MemoryRepositoryManager struct {
	credentials *credentials.MemoryRepository
	users       *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		credentials: credentials.NewMemoryRepository(),
		users:       users.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Credentials() credentials.Repository { return m.credentials }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Close(context.Context) error { return nil }
