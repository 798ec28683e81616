// Package models defines the records persisted by vaultkeeper.
package models

import (
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/google/uuid"
)

// IdentityKey uniquely identifies a credential record.
type IdentityKey struct {
	Owner   string
	Service string
	Account string
}

// CredentialRecord is a sealed secret stored under its identity key.
type CredentialRecord struct {
	// ID is a surrogate identifier; the identity key is what callers use.
	ID string

	Owner   string
	Service string
	Account string

	// Envelope holds the sealed secret. It is replaced in place on update.
	Envelope cryptox.Envelope

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCredentialRecord builds a record for key with a fresh ID and timestamps.
func NewCredentialRecord(key IdentityKey, env cryptox.Envelope) *CredentialRecord {
	now := time.Now().UTC()
	return &CredentialRecord{
		ID:        uuid.NewString(),
		Owner:     key.Owner,
		Service:   key.Service,
		Account:   key.Account,
		Envelope:  env,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key returns the identity key of r.
func (r *CredentialRecord) Key() IdentityKey {
	return IdentityKey{Owner: r.Owner, Service: r.Service, Account: r.Account}
}

// CredentialRef names a stored credential without its secret.
type CredentialRef struct {
	Service string
	Account string
}
