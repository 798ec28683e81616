package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/repositories/users"
)

// AuthService registers owners and checks their passwords.
//
// Contract:
//   - Register: create an owner; common.ErrRegistrationConflict if taken.
//   - Authenticate: common.ErrAuthenticationFailure for an unknown user or a
//     wrong password, without telling the two apart.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Authenticate(ctx context.Context, username string, password []byte) error
}

type authService struct {
	repo   users.Repository
	rnd    io.Reader
	logger logging.Logger
}

// NewAuthService constructs an AuthService over the authentication store.
// rnd supplies password salts; nil selects crypto/rand.
func NewAuthService(repo users.Repository, rnd io.Reader, logger logging.Logger) AuthService {
	return &authService{repo: repo, rnd: rnd, logger: logger}
}

// decoyHash is verified against for unknown users so both failure paths
// cost one hash.
var decoyHash = sync.OnceValue(func() string {
	return cryptox.HashPassword(nil, []byte("vaultkeeper-decoy"))
})

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	if username == "" || len(password) == 0 {
		return fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	_, err := a.repo.FindByUsername(ctx, username)
	if err == nil {
		return common.ErrRegistrationConflict
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("find user: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: cryptox.HashPassword(a.rnd, password),
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return common.ErrRegistrationConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	a.logger.Info(ctx, "owner registered", "owner", username)
	return nil
}

func (a *authService) Authenticate(ctx context.Context, username string, password []byte) error {
	user, err := a.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("find user: %w", err)
		}
		cryptox.VerifyPassword(decoyHash(), password)
		a.logger.Warn(ctx, "authentication failed", "owner", username)
		return common.ErrAuthenticationFailure
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		a.logger.Warn(ctx, "authentication failed", "owner", username)
		return common.ErrAuthenticationFailure
	}

	a.logger.Info(ctx, "owner authenticated", "owner", username)
	return nil
}
