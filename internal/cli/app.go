package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/services"
)

type App struct {
	authService services.AuthService
	store       services.CredentialStore
	logger      logging.Logger

	// owner is the authenticated username; empty when logged out.
	owner string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(auth services.AuthService, store services.CredentialStore, in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		authService: auth,
		store:       store,
		logger:      logger,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run blocks in the REPL until exit/quit or end of input.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the vault (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.owner != ""
}

func (a *App) getStatus() string {
	if a.owner == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.owner)
}
