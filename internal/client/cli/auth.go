package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mmadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the currently
// selected server. Only system administrators get in; the session layer
// rejects everyone else before anything is persisted.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.session.URL() == "" {
		printlnFn("No server selected. Use 'server <url>' first.")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, a.session.URL(), userName, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.setMode(ModeOnline)
	printlnFn("Logged in as " + user.Username)
	return nil
}

// Whoami prints the identity stored for the current session.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s (%s) on %s",
		a.creds.GetUsername(ctx), a.creds.GetUserID(ctx), a.session.URL()))
	return nil
}

// Logout clears stored credentials and resets the in-memory session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
