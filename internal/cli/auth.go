package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
)

var errPasswordMismatch = errors.New("passwords do not match")

// usernameArg returns the inline username or prompts for one.
func (a *App) usernameArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Enter username", a.out)
}

// Register prompts for a username and a confirmed password and creates the
// owner. The password is wiped before returning.
func (a *App) Register(ctx context.Context, args []string) error {
	username, err := a.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		a.failure("%s", errPasswordMismatch.Error())
		return errPasswordMismatch
	}

	if err := a.authService.Register(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrValidation) {
			a.failure("username and password must not be empty")
			return err
		}
		return a.report(ctx, "register", err)
	}

	a.success("Registered %s", username)
	a.hint("Run login to start a session")
	return nil
}

// Login authenticates an owner and starts a session for them. A failed
// login leaves the current session untouched.
func (a *App) Login(ctx context.Context, args []string) error {
	username, err := a.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Authenticate(ctx, username, password); err != nil {
		return a.report(ctx, "login", err)
	}

	a.owner = username
	a.success("Logged in as %s", username)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.owner = ""
	a.success("Logged out")
	return nil
}
