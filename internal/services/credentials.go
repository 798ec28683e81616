package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/passgen"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/credentials"
)

// PutResult describes the outcome of CredentialStore.Put.
type PutResult struct {
	// Inserted is false when an existing record was updated.
	Inserted bool
	// Generated is true when the secret was produced by the store.
	Generated bool
	// Secret is the plaintext that was sealed. Callers should wipe it.
	Secret []byte
}

// CredentialStore stores, retrieves and deletes sealed secrets keyed by
// (owner, service, account). The owner is trusted to be authenticated.
type CredentialStore interface {
	Put(ctx context.Context, owner, service, account string, secret []byte) (*PutResult, error)
	Get(ctx context.Context, owner, service, account string) ([]byte, error)
	Delete(ctx context.Context, owner, service, account string) (bool, error)
	List(ctx context.Context, owner string) ([]models.CredentialRef, error)
	GeneratePassword() []byte
}

type credentialStore struct {
	repo           credentials.Repository
	cipher         *cryptox.Cipher
	rnd            io.Reader
	passwordLength int
	logger         logging.Logger
}

// NewCredentialStore builds a CredentialStore. A nil rnd selects
// crypto/rand; a non-positive passwordLength selects passgen.DefaultLength.
func NewCredentialStore(repo credentials.Repository, cipher *cryptox.Cipher, rnd io.Reader, passwordLength int, logger logging.Logger) CredentialStore {
	if passwordLength <= 0 {
		passwordLength = passgen.DefaultLength
	}
	return &credentialStore{
		repo:           repo,
		cipher:         cipher,
		rnd:            rnd,
		passwordLength: passwordLength,
		logger:         logger,
	}
}

func identityKey(owner, service, account string) (models.IdentityKey, error) {
	if owner == "" || service == "" || account == "" {
		return models.IdentityKey{}, fmt.Errorf("%w: owner, service and account are required", common.ErrValidation)
	}
	return models.IdentityKey{Owner: owner, Service: service, Account: account}, nil
}

// GeneratePassword returns a fresh password of the configured length.
func (s *credentialStore) GeneratePassword() []byte {
	return passgen.Generate(s.rnd, s.passwordLength)
}

// Put seals secret and stores it under the identity key, replacing any
// previous value. An empty secret is replaced by a generated password,
// returned in the result.
func (s *credentialStore) Put(ctx context.Context, owner, service, account string, secret []byte) (*PutResult, error) {
	key, err := identityKey(owner, service, account)
	if err != nil {
		return nil, err
	}

	res := &PutResult{Secret: secret}
	if len(secret) == 0 {
		res.Secret = s.GeneratePassword()
		res.Generated = true
	}

	env := s.cipher.Seal(res.Secret)

	inserted, err := s.upsert(ctx, key, env)
	if err != nil {
		s.logger.Error(ctx, "credential store failed", "owner", owner, "service", service, "account", account, "error", err)
		return nil, err
	}
	res.Inserted = inserted

	s.logger.Info(ctx, "credential stored", "owner", owner, "service", service, "account", account,
		"inserted", inserted, "generated", res.Generated)
	return res, nil
}

func (s *credentialStore) upsert(ctx context.Context, key models.IdentityKey, env cryptox.Envelope) (bool, error) {
	existing, err := s.repo.FindByKey(ctx, key)
	if err == nil {
		return false, s.replace(ctx, existing, env)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("find credential: %w", err)
	}

	err = s.repo.Insert(ctx, models.NewCredentialRecord(key, env))
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, common.ErrConflict) {
		return false, fmt.Errorf("insert credential: %w", err)
	}

	// another writer inserted the key first; update its record once
	existing, err = s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.ErrConflict
		}
		return false, fmt.Errorf("find credential: %w", err)
	}
	return false, s.replace(ctx, existing, env)
}

func (s *credentialStore) replace(ctx context.Context, rec *models.CredentialRecord, env cryptox.Envelope) error {
	rec.Envelope = env
	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.Replace(ctx, rec); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrConflict
		}
		return fmt.Errorf("replace credential: %w", err)
	}
	return nil
}

// Get returns the plaintext stored under the identity key. It fails with
// common.ErrorNotFound or common.ErrDecrypt.
func (s *credentialStore) Get(ctx context.Context, owner, service, account string) ([]byte, error) {
	key, err := identityKey(owner, service, account)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	secret, err := s.cipher.Open(rec.Envelope)
	if err != nil {
		s.logger.Warn(ctx, "credential unreadable", "owner", owner, "service", service, "account", account)
		return nil, err
	}

	s.logger.Debug(ctx, "credential read", "owner", owner, "service", service, "account", account)
	return secret, nil
}

// Delete removes the record under the identity key and reports whether one
// existed. Deleting an absent key is not an error.
func (s *credentialStore) Delete(ctx context.Context, owner, service, account string) (bool, error) {
	key, err := identityKey(owner, service, account)
	if err != nil {
		return false, err
	}

	deleted, err := s.repo.DeleteByKey(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete credential: %w", err)
	}

	s.logger.Info(ctx, "credential deleted", "owner", owner, "service", service, "account", account, "existed", deleted)
	return deleted, nil
}

// List returns the (service, account) pairs stored for owner.
func (s *credentialStore) List(ctx context.Context, owner string) ([]models.CredentialRef, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", common.ErrValidation)
	}

	refs, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	if refs == nil {
		refs = []models.CredentialRef{}
	}
	return refs, nil
}
