// Package users provides the owner credential store: a keyed collection of
// usernames and password hashes, unique by username.
package users

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/models"
)

// Repository is the authentication store port.
type Repository interface {
	// FindByUsername returns common.ErrorNotFound when the user is absent.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Insert fails with common.ErrConflict if the username exists.
	Insert(ctx context.Context, user *models.User) error
}
