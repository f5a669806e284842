package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Server(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "server")
	if len(args) > 0 {
		f.arg = args[0]
	}
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Users(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "users")
	return nil
}
func (f *fakeExec) Search(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "search")
	f.arg = strings.Join(args, " ")
	return nil
}
func (f *fakeExec) User(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "user")
	f.arg = args[0]
	return nil
}
func (f *fakeExec) Activate(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "activate")
	return nil
}
func (f *fakeExec) Deactivate(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "deactivate")
	return nil
}
func (f *fakeExec) ResetPass(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "resetpass")
	return nil
}
func (f *fakeExec) Teams(ctx context.Context) error {
	f.calls = append(f.calls, "teams")
	return nil
}
func (f *fakeExec) Roles(ctx context.Context) error {
	f.calls = append(f.calls, "roles")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"server https://chat.example.com",
		"login",
		"help",
		"users",
		"search bob smith",
		"user abc123",
		"teams",
		"roles",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"server", "login", "users", "search", "user", "teams", "roles", "logout"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if exec.arg != "abc123" {
		t.Fatalf("user arg not forwarded: %q", exec.arg)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	// Commands that require an argument must not dispatch without one.
	input := strings.NewReader("search\nuser\nactivate\ndeactivate\nresetpass\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFStops(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(""))
	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
