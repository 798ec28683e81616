package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	pgmigrations "github.com/dmitrijs2005/vaultkeeper/internal/migrations/postgres"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/credentials"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations over a shared connection pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// OpenPostgres connects via the pgx stdlib driver and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	m, err := NewPostgresRepositoryManager(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewPostgresRepositoryManager migrates db and wraps it.
func NewPostgresRepositoryManager(ctx context.Context, db *sql.DB) (*PostgresRepositoryManager, error) {
	if err := runMigrations(ctx, db, pgmigrations.Migrations, "pgx"); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &PostgresRepositoryManager{db: db}, nil
}

// Credentials returns a credentials.Repository bound to the pool.
func (m *PostgresRepositoryManager) Credentials() credentials.Repository {
	return credentials.NewPostgresRepository(m.db)
}

// Users returns a users.Repository bound to the pool.
func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
