package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
)

type queries struct {
	find, insert, replace, delete, list string
}

var sqliteQueries = queries{
	find: `SELECT id, owner, service, account, ciphertext, nonce, created_at, updated_at
		FROM credentials WHERE owner = ? AND service = ? AND account = ?`,
	insert: `INSERT INTO credentials (id, owner, service, account, ciphertext, nonce, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	replace: `UPDATE credentials SET ciphertext = ?, nonce = ?, updated_at = ?
		WHERE owner = ? AND service = ? AND account = ?`,
	delete: `DELETE FROM credentials WHERE owner = ? AND service = ? AND account = ?`,
	list:   `SELECT service, account FROM credentials WHERE owner = ? ORDER BY service, account`,
}

var postgresQueries = queries{
	find: `SELECT id, owner, service, account, ciphertext, nonce, created_at, updated_at
		FROM credentials WHERE owner = $1 AND service = $2 AND account = $3`,
	insert: `INSERT INTO credentials (id, owner, service, account, ciphertext, nonce, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	replace: `UPDATE credentials SET ciphertext = $1, nonce = $2, updated_at = $3
		WHERE owner = $4 AND service = $5 AND account = $6`,
	delete: `DELETE FROM credentials WHERE owner = $1 AND service = $2 AND account = $3`,
	list:   `SELECT service, account FROM credentials WHERE owner = $1 ORDER BY service, account`,
}

// SQLRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
// The SQLite and PostgreSQL variants differ only in placeholder syntax.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

// NewSQLiteRepository returns a SQLRepository using SQLite placeholders.
func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

// NewPostgresRepository returns a SQLRepository using PostgreSQL placeholders.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

func (r *SQLRepository) FindByKey(ctx context.Context, key models.IdentityKey) (*models.CredentialRecord, error) {
	row := r.db.QueryRowContext(ctx, r.q.find, key.Owner, key.Service, key.Account)

	var (
		rec        models.CredentialRecord
		ciphertext string
		nonce      string
	)
	err := row.Scan(&rec.ID, &rec.Owner, &rec.Service, &rec.Account, &ciphertext, &nonce, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.Envelope = envelopeFromColumns(ciphertext, nonce)
	return &rec, nil
}

func (r *SQLRepository) Insert(ctx context.Context, rec *models.CredentialRecord) error {
	ciphertext, nonce := rec.Envelope.Hex()
	_, err := r.db.ExecContext(ctx, r.q.insert,
		rec.ID, rec.Owner, rec.Service, rec.Account, ciphertext, nonce, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (r *SQLRepository) Replace(ctx context.Context, rec *models.CredentialRecord) error {
	ciphertext, nonce := rec.Envelope.Hex()
	res, err := r.db.ExecContext(ctx, r.q.replace,
		ciphertext, nonce, rec.UpdatedAt, rec.Owner, rec.Service, rec.Account)
	if err != nil {
		return fmt.Errorf("failed to replace credential: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) DeleteByKey(ctx context.Context, key models.IdentityKey) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.q.delete, key.Owner, key.Service, key.Account)
	if err != nil {
		return false, fmt.Errorf("failed to delete credential: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra > 0, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, owner string) ([]models.CredentialRef, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select credentials: %w", err)
	}
	defer rows.Close()

	result := []models.CredentialRef{}
	for rows.Next() {
		var ref models.CredentialRef
		if err := rows.Scan(&ref.Service, &ref.Account); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
