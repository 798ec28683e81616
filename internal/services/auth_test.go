package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// racingUsers reports the user absent but fails the insert as if another
// process registered it in between.
type racingUsers struct {
	users.Repository
}

func (racingUsers) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (racingUsers) Insert(context.Context, *models.User) error { return common.ErrConflict }

type brokenUsers struct {
	users.Repository
	err error
}

func (b brokenUsers) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, b.err
}

func TestRegisterAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	svc := NewAuthService(repo, nil, logging.Nop())

	require.NoError(t, svc.Register(ctx, "john", []byte("s3cret")))

	u, err := repo.FindByUsername(ctx, "john")
	require.NoError(t, err)
	assert.NotContains(t, u.PasswordHash, "s3cret")

	require.NoError(t, svc.Authenticate(ctx, "john", []byte("s3cret")))
	require.ErrorIs(t, svc.Authenticate(ctx, "john", []byte("wrong")), common.ErrAuthenticationFailure)
	require.ErrorIs(t, svc.Authenticate(ctx, "nobody", []byte("s3cret")), common.ErrAuthenticationFailure)
}

func TestRegister_SaltFromInjectedSource(t *testing.T) {
	ctx := context.Background()
	repo := users.NewMemoryRepository()
	salt := bytes.Repeat([]byte{0x5a}, 16)
	svc := NewAuthService(repo, bytes.NewReader(salt), logging.Nop())

	require.NoError(t, svc.Register(ctx, "john", []byte("Secr3t!123")))

	u, err := repo.FindByUsername(ctx, "john")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "argon2id$"+hex.EncodeToString(salt)+"$"))
	require.NoError(t, svc.Authenticate(ctx, "john", []byte("Secr3t!123")))
}

func TestRegister_Conflict(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(users.NewMemoryRepository(), nil, logging.Nop())

	require.NoError(t, svc.Register(ctx, "john", []byte("a")))
	require.ErrorIs(t, svc.Register(ctx, "john", []byte("b")), common.ErrRegistrationConflict)

	// the first password still authenticates
	require.NoError(t, svc.Authenticate(ctx, "john", []byte("a")))
}

func TestRegister_InsertRaceIsConflict(t *testing.T) {
	svc := NewAuthService(racingUsers{}, nil, logging.Nop())
	err := svc.Register(context.Background(), "john", []byte("a"))
	require.ErrorIs(t, err, common.ErrRegistrationConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(users.NewMemoryRepository(), nil, logging.Nop())
	require.ErrorIs(t, svc.Register(context.Background(), "", []byte("a")), common.ErrValidation)
	require.ErrorIs(t, svc.Register(context.Background(), "john", nil), common.ErrValidation)
}

func TestAuthenticate_BackendError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewAuthService(brokenUsers{err: boom}, nil, logging.Nop())

	err := svc.Authenticate(context.Background(), "john", []byte("a"))
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, common.ErrAuthenticationFailure)
}
