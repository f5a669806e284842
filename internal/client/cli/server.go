package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/mmadmin/internal/netx"
)

// Server points the client at a Mattermost server and probes it. The URL is
// taken from the first argument, or prompted for when none is given.
func (a *App) Server(ctx context.Context, args []string) error {
	var url string
	if len(args) > 0 {
		url = args[0]
	} else {
		var err error
		url, err = getSimpleText(a.reader, "Enter server URL", os.Stdout)
		if err != nil {
			return err
		}
	}

	if err := netx.ValidateServerURL(url); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.session.PingServer(ctx, url); err != nil {
		a.setMode(ModeOffline)
		printlnFn(err.Error())
		return err
	}

	a.setMode(ModeOnline)
	printlnFn("Connected to " + a.session.URL())
	return nil
}
