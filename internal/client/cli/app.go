package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/mmadmin/internal/client/config"
	"github.com/dmitrijs2005/mmadmin/internal/client/credentials"
	"github.com/dmitrijs2005/mmadmin/internal/client/mattermost"
	"github.com/dmitrijs2005/mmadmin/internal/client/securestore"
	"github.com/dmitrijs2005/mmadmin/internal/client/services"
	"github.com/dmitrijs2005/mmadmin/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects the last known connectivity state shown in the prompt.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	session *services.Session
	creds   *credentials.Store
	store   *securestore.SQLiteStore
	log     logging.Logger
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := securestore.Open(ctx, c.DatabasePath, c.KeyPath)
	if err != nil {
		log.Error(ctx, "error opening credential store", "error", err)
		return nil, err
	}

	creds := credentials.NewStore(store, log)
	session := services.NewSession(mattermost.NewRESTClient(), creds, log)

	return &App{
		config:  c,
		session: session,
		creds:   creds,
		store:   store,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Token() != ""
}

// getStatus renders the prompt suffix: the server host when one is set and
// the connectivity mode once it is known.
func (a *App) getStatus() string {
	s := ""
	if url := a.session.URL(); url != "" {
		s = url + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run restores a persisted session, validates it against the server, starts
// the connectivity watcher, and hands control to the REPL. It blocks until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	a.session.Initialize(ctx)
	if a.session.URL() == "" && a.config.ServerURL != "" {
		_ = a.session.PingServer(ctx, a.config.ServerURL)
	}

	if a.session.IsAuthenticated(ctx) {
		if a.session.ValidateToken(ctx) {
			printlnFn("Restored session on " + a.session.URL())
		} else {
			printlnFn("Stored session is no longer valid, please log in again.")
		}
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("mmadmin CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// StartOnlineStatusWatcher periodically probes the configured server and
// flips Mode between online and offline. It returns when ctx is cancelled,
// or immediately when interval is non-positive (watcher disabled).
//
// The probe is read-only: it never writes to the client handle, so it cannot
// clobber a URL the user is changing in the REPL.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.log.Warn(ctx, "online status watcher disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.session.URL() == "" {
				continue
			}

			tctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.session.Ping(tctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
