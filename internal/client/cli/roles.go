package cli

import (
	"context"
	"fmt"
)

// Roles lists the built-in roles and their permission counts.
func (a *App) Roles(ctx context.Context) error {
	roles, err := a.session.GetAllRoles(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	for _, r := range roles {
		printlnFn(fmt.Sprintf("%-24s %-32s %d permissions", r.Name, r.DisplayName, len(r.Permissions)))
	}
	return nil
}
