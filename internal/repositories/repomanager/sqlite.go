package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/filex"
	sqlitemigrations "github.com/dmitrijs2005/vaultkeeper/internal/migrations/sqlite"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/credentials"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"

	_ "modernc.org/sqlite"
)

// SQLiteDSN builds a modernc.org/sqlite DSN for path with WAL, a busy
// timeout and SQLite-native time formatting.
func SQLiteDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_time_format=sqlite",
		path,
	)
}

type SQLiteRepositoryManager struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path and
// migrates it to the latest schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepositoryManager, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids "database is locked" under WAL
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	m, err := NewSQLiteRepositoryManager(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewSQLiteRepositoryManager migrates db and wraps it.
func NewSQLiteRepositoryManager(ctx context.Context, db *sql.DB) (*SQLiteRepositoryManager, error) {
	if err := runMigrations(ctx, db, sqlitemigrations.Migrations, "sqlite3"); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteRepositoryManager{db: db}, nil
}

func (m *SQLiteRepositoryManager) Credentials() credentials.Repository {
	return credentials.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return users.NewSQLiteRepository(m.db)
}

func (m *SQLiteRepositoryManager) Close(context.Context) error {
	return m.db.Close()
}
