package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real
// App satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Store(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Generate(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, generate, help, exit"
	helpLoggedIn  = "Available commands: store [service account], get [service account], " +
		"delete [service account], (l)ist, generate, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches on its
// first token. Remaining tokens are passed to commands that accept them.
// The loop exits on end of input or on "exit" / "quit".
//
//	Not logged in:
//	  - help, register, login, generate, exit | quit
//
//	Logged in:
//	  - store, get, delete: optional inline "service account"
//	  - list | l
//	  - generate
//	  - logout
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vault%s> ", prefixSpace(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx, args)

		case "login":
			_ = a.Login(ctx, args)

		case "generate":
			_ = a.Generate(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "store", "get", "delete", "l", "list", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			switch cmd {
			case "store":
				_ = a.Store(ctx, args)
			case "get":
				_ = a.Get(ctx, args)
			case "delete":
				_ = a.Delete(ctx, args)
			case "l", "list":
				_ = a.List(ctx)
			case "logout":
				_ = a.Logout(ctx)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
