// Package credentials provides the persistence port for credential records.
//
// # Overview
//
// Repository is a keyed store over models.CredentialRecord. The identity key
// (owner, service, account) is unique and the uniqueness is enforced by the
// backend itself: a unique index in SQLite and PostgreSQL, a unique compound
// index in MongoDB, and the map key in the in-memory implementation.
//
// # Errors
//
//   - FindByKey returns common.ErrorNotFound when the key is absent.
//   - Insert returns common.ErrConflict when the key already exists.
//   - Replace returns common.ErrorNotFound when the key vanished.
//
// # Storage format
//
// Ciphertext and nonce are stored as lowercase hex text. A row whose hex is
// unreadable loads with an empty envelope so it can still be replaced or
// deleted; opening it fails with common.ErrDecrypt.
//
// Key Types
//
//   - type Repository       : interface used by the credential store
//   - type SQLRepository    : SQLite and PostgreSQL over dbx.DBTX
//   - type MongoRepository  : MongoDB collection
//   - type MemoryRepository : process-local map
package credentials
