package cli

import (
	"context"
	"fmt"
)

// Teams lists the teams on the server.
func (a *App) Teams(ctx context.Context) error {
	teams, err := a.session.GetAllTeams(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(teams) == 0 {
		printlnFn("No teams found.")
		return nil
	}
	for _, t := range teams {
		printlnFn(fmt.Sprintf("%-28s %-20s %s", t.ID, t.Name, t.DisplayName))
	}
	return nil
}
