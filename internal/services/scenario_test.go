package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openScenario(t *testing.T) (AuthService, CredentialStore) {
	t.Helper()
	ctx := context.Background()

	m, err := repomanager.OpenSQLite(ctx, filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close(ctx) })

	key := cryptox.DeriveMasterKey([]byte("master passphrase"), []byte("salt"))
	cipher, err := cryptox.NewCipher(key, nil)
	require.NoError(t, err)

	return NewAuthService(m.Users(), nil, logging.Nop()),
		NewCredentialStore(m.Credentials(), cipher, nil, 0, logging.Nop())
}

// TestScenario_SQLite walks register, login, store, read and delete for one
// owner against a real database file.
func TestScenario_SQLite(t *testing.T) {
	ctx := context.Background()
	auth, store := openScenario(t)

	require.NoError(t, auth.Register(ctx, "john", []byte("Secr3t!123")))
	require.ErrorIs(t, auth.Register(ctx, "john", []byte("Secr3t!123")), common.ErrRegistrationConflict)
	require.ErrorIs(t, auth.Authenticate(ctx, "john", []byte("wrong")), common.ErrAuthenticationFailure)
	require.NoError(t, auth.Authenticate(ctx, "john", []byte("Secr3t!123")))

	res, err := store.Put(ctx, "john", "Gmail", "john@x.com", []byte("hunter2pass"))
	require.NoError(t, err)
	assert.True(t, res.Inserted)
	assert.False(t, res.Generated)

	got, err := store.Get(ctx, "john", "Gmail", "john@x.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2pass"), got)

	deleted, err := store.Delete(ctx, "john", "Gmail", "john@x.com")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.Get(ctx, "john", "Gmail", "john@x.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestScenario_SQLiteGeneratedUpdate(t *testing.T) {
	ctx := context.Background()
	_, store := openScenario(t)

	res, err := store.Put(ctx, "john", "Gmail", "john@x.com", []byte("hunter2pass"))
	require.NoError(t, err)
	require.True(t, res.Inserted)

	res, err = store.Put(ctx, "john", "Gmail", "john@x.com", nil)
	require.NoError(t, err)
	assert.False(t, res.Inserted)
	assert.True(t, res.Generated)
	assert.Len(t, res.Secret, 12)

	got, err := store.Get(ctx, "john", "Gmail", "john@x.com")
	require.NoError(t, err)
	assert.Equal(t, res.Secret, got)

	refs, err := store.List(ctx, "john")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Gmail", refs[0].Service)
}
