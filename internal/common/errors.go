// Package common defines shared sentinel errors and small helpers used across
// vaultkeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("record already exists")

	// ErrDecrypt covers every envelope opening failure: wrong key, corrupted
	// ciphertext, bad padding or a malformed nonce all look the same.
	ErrDecrypt = errors.New("unreadable secret")

	// Owner authentication errors.
	ErrRegistrationConflict  = errors.New("username already taken")
	ErrAuthenticationFailure = errors.New("invalid username or password")

	// Validation errors.
	ErrValidation = errors.New("validation error")
)
