// Package services contains the application services behind the vault CLI:
// the credential store, which seals secrets before they reach persistence,
// and owner authentication.
package services
