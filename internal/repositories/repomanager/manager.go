// Package repomanager opens the configured storage backend and vends the
// repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/credentials"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"
)

// RepositoryManager owns a storage connection for the lifetime of the
// process.
type RepositoryManager interface {
	Credentials() credentials.Repository
	Users() users.Repository
	Close(ctx context.Context) error
}

// New opens the backend selected by cfg.Backend, applying migrations or
// indexes as needed.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.DatabaseDSN)
	case config.BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
	case config.BackendMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
