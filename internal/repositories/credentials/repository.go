package credentials

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
)

// Repository describes the keyed operations the credential store needs.
type Repository interface {
	// FindByKey returns the record stored under key.
	FindByKey(ctx context.Context, key models.IdentityKey) (*models.CredentialRecord, error)

	// Insert stores a new record. It fails with common.ErrConflict on a duplicate key.
	Insert(ctx context.Context, record *models.CredentialRecord) error

	// Replace overwrites the envelope and UpdatedAt of the record with the same key.
	Replace(ctx context.Context, record *models.CredentialRecord) error

	// DeleteByKey removes the record and reports whether one existed.
	DeleteByKey(ctx context.Context, key models.IdentityKey) (bool, error)

	// ListByOwner returns the (service, account) pairs of owner, sorted.
	ListByOwner(ctx context.Context, owner string) ([]models.CredentialRef, error)
}

func envelopeFromColumns(ciphertext, nonce string) cryptox.Envelope {
	env, err := cryptox.EnvelopeFromHex(ciphertext, nonce)
	if err != nil {
		return cryptox.Envelope{}
	}
	return env
}
