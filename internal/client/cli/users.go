package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mmadmin/internal/client/mattermost"
	"github.com/dmitrijs2005/mmadmin/internal/client/services"
)

func formatUserLine(u *mattermost.User) string {
	status := "active"
	if !u.IsActive() {
		status = "inactive"
	}
	if u.IsSystemAdmin() {
		status += ", admin"
	}
	return fmt.Sprintf("%-28s %-20s %-30s [%s]", u.ID, u.Username, u.Email, status)
}

// Users lists users page by page. An optional numeric argument selects the
// page; the default is the first one.
func (a *App) Users(ctx context.Context, args []string) error {
	page := 0
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 0 {
			printlnFn("Usage: users [page]")
			return nil
		}
		page = p
	}

	users, err := a.session.GetAllUsers(ctx, page, 20)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(users) == 0 {
		printlnFn("No users found.")
		return nil
	}
	for _, u := range users {
		printlnFn(formatUserLine(u))
	}
	return nil
}

// Search runs a server-side user search; the term may contain spaces.
// Deactivated accounts are included so admins can find them to reactivate.
func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")

	users, err := a.session.SearchUsers(ctx, term, services.SearchOptions{AllowInactive: true})
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(users) == 0 {
		printlnFn("No users found.")
		return nil
	}
	for _, u := range users {
		printlnFn(formatUserLine(u))
	}
	return nil
}

// User shows one user in detail.
func (a *App) User(ctx context.Context, args []string) error {
	u, err := a.session.GetUser(ctx, args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("ID:       " + u.ID)
	printlnFn("Username: " + u.Username)
	printlnFn("Email:    " + u.Email)
	printlnFn("Roles:    " + u.Roles)
	if u.AuthService != "" {
		printlnFn("Auth:     " + u.AuthService)
	}
	if u.IsActive() {
		printlnFn("Status:   active")
	} else {
		printlnFn("Status:   inactive")
	}
	return nil
}

func (a *App) Activate(ctx context.Context, args []string) error {
	return a.updateActive(ctx, args[0], true)
}

func (a *App) Deactivate(ctx context.Context, args []string) error {
	return a.updateActive(ctx, args[0], false)
}

func (a *App) updateActive(ctx context.Context, userID string, active bool) error {
	if err := a.session.UpdateUserActive(ctx, userID, active); err != nil {
		printlnFn(err.Error())
		return err
	}
	if active {
		printlnFn("User activated.")
	} else {
		printlnFn("User deactivated.")
	}
	return nil
}

// ResetPass sends a password reset email to the given address.
func (a *App) ResetPass(ctx context.Context, args []string) error {
	if err := a.session.SendPasswordResetEmail(ctx, args[0]); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Password reset email sent.")
	return nil
}
