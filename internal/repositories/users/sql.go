package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
)

// SQLRepository implements Repository over a DBTX for SQLite or PostgreSQL.
type SQLRepository struct {
	db          dbx.DBTX
	findQuery   string
	insertQuery string
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{
		db:          db,
		findQuery:   `SELECT username, password_hash, created_at FROM users WHERE username = ?`,
		insertQuery: `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
	}
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{
		db:          db,
		findQuery:   `SELECT username, password_hash, created_at FROM users WHERE username = $1`,
		insertQuery: `INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3)`,
	}
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, r.findQuery, username).
		Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *SQLRepository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, r.insertQuery, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
