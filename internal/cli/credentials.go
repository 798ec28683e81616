package cli

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
)

// serviceAccount returns the inline "service account" pair or prompts for
// both.
func (a *App) serviceAccount(args []string) (string, string, error) {
	if len(args) >= 2 {
		return args[0], args[1], nil
	}

	service, err := getSimpleText(a.reader, "Enter service name", a.out)
	if err != nil {
		return "", "", err
	}
	account, err := getSimpleText(a.reader, "Enter account", a.out)
	if err != nil {
		return "", "", err
	}
	return service, account, nil
}

// Store prompts for a secret and saves it under (owner, service, account).
// An empty secret makes the vault generate one, which is printed once.
func (a *App) Store(ctx context.Context, args []string) error {
	service, account, err := a.serviceAccount(args)
	if err != nil {
		return err
	}

	secret, err := getPassword(a.reader, "Enter secret (empty to generate)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	res, err := a.store.Put(ctx, a.owner, service, account, secret)
	if err != nil {
		return a.report(ctx, "store", err)
	}
	defer common.WipeByteArray(res.Secret)

	if res.Inserted {
		a.success("Stored %s / %s", service, account)
	} else {
		a.success("Updated %s / %s", service, account)
	}
	if res.Generated {
		a.hint("Generated password: %s", res.Secret)
	}
	return nil
}

// Get prints the secret stored under (owner, service, account).
func (a *App) Get(ctx context.Context, args []string) error {
	service, account, err := a.serviceAccount(args)
	if err != nil {
		return err
	}

	secret, err := a.store.Get(ctx, a.owner, service, account)
	if err != nil {
		return a.report(ctx, "get", err)
	}
	defer common.WipeByteArray(secret)

	a.success("%s / %s: %s", service, account, secret)
	return nil
}

// Delete removes the credential. Deleting a missing one only prints a note.
func (a *App) Delete(ctx context.Context, args []string) error {
	service, account, err := a.serviceAccount(args)
	if err != nil {
		return err
	}

	deleted, err := a.store.Delete(ctx, a.owner, service, account)
	if err != nil {
		return a.report(ctx, "delete", err)
	}

	if deleted {
		a.success("Deleted %s / %s", service, account)
	} else {
		a.hint("Nothing stored for %s / %s", service, account)
	}
	return nil
}

// List prints the (service, account) pairs of the logged-in owner.
func (a *App) List(ctx context.Context) error {
	refs, err := a.store.List(ctx, a.owner)
	if err != nil {
		return a.report(ctx, "list", err)
	}

	if len(refs) == 0 {
		a.hint("No credentials stored")
		return nil
	}
	for _, r := range refs {
		a.hint("%s / %s", r.Service, r.Account)
	}
	return nil
}

// Generate prints a fresh password without storing it.
func (a *App) Generate(ctx context.Context) error {
	pw := a.store.GeneratePassword()
	defer common.WipeByteArray(pw)

	a.success("%s", pw)
	return nil
}
