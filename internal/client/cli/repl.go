package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Server(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Whoami(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	User(ctx context.Context, args []string) error
	Activate(ctx context.Context, args []string) error
	Deactivate(ctx context.Context, args []string) error
	ResetPass(ctx context.Context, args []string) error
	Teams(ctx context.Context) error
	Roles(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the mmadmin CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - server [url]     — point the client at a server and probe it
//	  - login            — authenticate as a system administrator
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - whoami           — show the logged-in administrator
//	  - users [page]     — list users page by page
//	  - search <term>    — search users by name or email
//	  - user <id>        — show one user in detail
//	  - activate <id>    — reactivate a deactivated account
//	  - deactivate <id>  — deactivate an account
//	  - resetpass <email> — send a password reset email
//	  - teams            — list teams
//	  - roles            — list the built-in roles
//	  - logout           — log out and clear stored credentials
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mmadmin %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, (u)sers, search, user, activate, deactivate, resetpass, teams, roles, logout, exit")
			} else {
				printlnFn("Available commands: server, login, exit")
			}

		case "server":
			_ = a.Server(ctx, args)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "u", "users":
			_ = a.Users(ctx, args)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			_ = a.Search(ctx, args)

		case "user":
			if len(args) == 0 {
				printlnFn("Usage: user <id>")
				continue
			}
			_ = a.User(ctx, args)

		case "activate":
			if len(args) == 0 {
				printlnFn("Usage: activate <id>")
				continue
			}
			_ = a.Activate(ctx, args)

		case "deactivate":
			if len(args) == 0 {
				printlnFn("Usage: deactivate <id>")
				continue
			}
			_ = a.Deactivate(ctx, args)

		case "resetpass":
			if len(args) == 0 {
				printlnFn("Usage: resetpass <email>")
				continue
			}
			_ = a.ResetPass(ctx, args)

		case "teams":
			_ = a.Teams(ctx)

		case "roles":
			_ = a.Roles(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
