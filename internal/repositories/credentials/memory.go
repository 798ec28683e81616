package credentials

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
)

// MemoryRepository keeps records in a map. It is safe for concurrent use.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[models.IdentityKey]models.CredentialRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[models.IdentityKey]models.CredentialRecord)}
}

func (r *MemoryRepository) FindByKey(_ context.Context, key models.IdentityKey) (*models.CredentialRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rec.Envelope = cloneEnvelope(rec.Envelope)
	return &rec, nil
}

func (r *MemoryRepository) Insert(_ context.Context, rec *models.CredentialRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rec.Key()
	if _, ok := r.records[key]; ok {
		return common.ErrConflict
	}
	stored := *rec
	stored.Envelope = cloneEnvelope(rec.Envelope)
	r.records[key] = stored
	return nil
}

func (r *MemoryRepository) Replace(_ context.Context, rec *models.CredentialRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rec.Key()
	stored, ok := r.records[key]
	if !ok {
		return common.ErrorNotFound
	}
	stored.Envelope = cloneEnvelope(rec.Envelope)
	stored.UpdatedAt = rec.UpdatedAt
	r.records[key] = stored
	return nil
}

func (r *MemoryRepository) DeleteByKey(_ context.Context, key models.IdentityKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[key]; !ok {
		return false, nil
	}
	delete(r.records, key)
	return true, nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, owner string) ([]models.CredentialRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []models.CredentialRef{}
	for k := range r.records {
		if k.Owner == owner {
			result = append(result, models.CredentialRef{Service: k.Service, Account: k.Account})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Service != result[j].Service {
			return result[i].Service < result[j].Service
		}
		return result[i].Account < result[j].Account
	})
	return result, nil
}

func cloneEnvelope(e cryptox.Envelope) cryptox.Envelope {
	return cryptox.Envelope{
		Ciphertext: append([]byte(nil), e.Ciphertext...),
		Nonce:      append([]byte(nil), e.Nonce...),
	}
}
