package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context, args []string) error {
	f.record("register", args)
	return nil
}
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.record("login", args)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Store(ctx context.Context, args []string) error {
	f.record("store", args)
	return nil
}
func (f *fakeExec) Get(ctx context.Context, args []string) error {
	f.record("get", args)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.record("delete", args)
	return nil
}
func (f *fakeExec) List(ctx context.Context) error     { f.record("list", nil); return nil }
func (f *fakeExec) Generate(ctx context.Context) error { f.record("generate", nil); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login john",
		"help",
		"store Gmail john@example.com",
		"get Gmail john@example.com",
		"l",
		"delete",
		"generate",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{"login", "store", "get", "list", "delete", "generate", "logout"}, exec.calls)
	assert.Equal(t, []string{"john"}, exec.args[0])
	assert.Equal(t, []string{"Gmail", "john@example.com"}, exec.args[1])
	assert.Empty(t, exec.args[4])
}

func TestRunREPL_RequiresLogin(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("store\nget a b\nlist\nlogout\ngenerate\nquit\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	assert.Equal(t, []string{"generate"}, exec.calls)
	assert.Contains(t, *lines, "Please login first")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, helpLoggedOut)

	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, helpLoggedIn)
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(john)" }, bufio.NewReader(strings.NewReader("\n\nregister")))

	assert.Equal(t, []string{"register"}, exec.calls, "last line without newline still runs")
	assert.Contains(t, *lines, "vault (john)> ")
	assert.NotContains(t, *lines, "Bye!")
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("upsert\n")))
	assert.Contains(t, *lines, "Unknown command:upsert")
}
