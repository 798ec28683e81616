// Package cli provides the interactive vault command-line client.
//
// A session starts logged out. After register and login the owner can
// store, get, delete and list credentials, or generate a password without
// storing it. Secrets are prompted for without echo when stdin is a
// terminal.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command table.
package cli
