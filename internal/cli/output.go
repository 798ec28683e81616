package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/fatih/color"
)

func (a *App) success(format string, args ...any) {
	fmt.Fprintln(a.out, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func (a *App) failure(format string, args ...any) {
	fmt.Fprintln(a.out, color.RedString("✗")+" "+fmt.Sprintf(format, args...))
}

func (a *App) hint(format string, args ...any) {
	fmt.Fprintln(a.out, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}

// describe maps service errors to user-facing text. Decrypt failures are
// reported without any envelope content.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrDecrypt):
		return "unreadable: the stored secret cannot be decrypted"
	case errors.Is(err, common.ErrValidation):
		return "service and account must not be empty"
	case errors.Is(err, common.ErrConflict):
		return "the record changed concurrently, try again"
	case errors.Is(err, common.ErrRegistrationConflict):
		return "username is already taken"
	case errors.Is(err, common.ErrAuthenticationFailure):
		return "invalid username or password"
	default:
		return "internal error"
	}
}

// report prints err for the user and logs unexpected ones.
func (a *App) report(ctx context.Context, op string, err error) error {
	msg := describe(err)
	if msg == "internal error" {
		a.logger.Error(ctx, op+" failed", "error", err)
	}
	a.failure("%s", msg)
	return err
}
