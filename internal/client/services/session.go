// Package services contains the application services for the mmadmin
// client. This file defines the session service: server reachability
// probing, admin login with durable credential persistence, token
// validation, and the administrative user/team/role operations.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mmadmin/internal/client/credentials"
	"github.com/dmitrijs2005/mmadmin/internal/client/mattermost"
	"github.com/dmitrijs2005/mmadmin/internal/logging"
	"github.com/dmitrijs2005/mmadmin/internal/netx"
)

// Access-control and fallback messages.
const (
	msgAccessDenied = "Access denied. This app is only available to system administrators."

	fallbackLogin       = "Login failed. Please check your credentials and try again."
	fallbackPing        = "Unable to connect to server. Please check the URL and try again."
	fallbackReset       = "Failed to send password reset email"
	fallbackSearchUsers = "Failed to search users"
	fallbackFetchUsers  = "Failed to fetch users"
	fallbackFetchUser   = "Failed to fetch user"
	fallbackFetchTeams  = "Failed to fetch teams"
	fallbackFetchRoles  = "Failed to fetch roles"
	fallbackUpdateUser  = "Failed to update user"
)

// Search defaults and bounds.
const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	defaultPageSize    = 20
)

// builtinRoleNames is the role inventory shown in the roles view.
var builtinRoleNames = []string{
	"system_admin",
	"system_user",
	"system_guest",
	"system_user_manager",
	"team_admin",
	"team_user",
	"team_guest",
	"channel_admin",
	"channel_user",
	"channel_guest",
}

// Session owns the single Mattermost client handle for the lifetime of the
// application and orchestrates it together with the credential store. It is
// constructed once in the composition root and shared by reference; the
// handle and its token/URL state are mutated only through Session methods.
type Session struct {
	client mattermost.Client
	creds  *credentials.Store
	log    logging.Logger

	// initOnce makes Initialize idempotent and safe for concurrent
	// callers: the first caller performs the restore, later callers wait
	// for it instead of duplicating work.
	initOnce sync.Once
}

func NewSession(client mattermost.Client, creds *credentials.Store, log logging.Logger) *Session {
	return &Session{client: client, creds: creds, log: log}
}

// Initialize restores a persisted session onto the client handle, if one
// exists. It never fails: a broken credential store reads as "no session"
// and the app proceeds unauthenticated rather than crashing at boot.
func (s *Session) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		rec := s.creds.GetAuthData(ctx)
		if rec == nil {
			s.log.Debug(ctx, "no stored session")
			return
		}
		s.client.SetURL(rec.ServerURL)
		s.client.SetToken(rec.Token)
		s.log.Info(ctx, "session restored", "server_url", rec.ServerURL)
	})
}

// PingServer points the client handle at url (normalized, https assumed
// when no scheme is given) and probes the server's liveness endpoint. It
// does not require Initialize and does not touch stored credentials.
func (s *Session) PingServer(ctx context.Context, url string) error {
	s.client.SetURL(netx.NormalizeServerURL(url))
	return s.Ping(ctx)
}

// Ping probes the currently selected server without touching the handle:
// background liveness checks must not write a URL back over one the user is
// changing. User-initiated probes of a new URL go through PingServer.
func (s *Session) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx); err != nil {
		s.log.Warn(ctx, "server ping failed")
		return classify(err, pingRules, CodeNetwork, fallbackPing)
	}
	return nil
}

// Login authenticates against url with the given credentials. Only system
// administrators are allowed in: a successful remote login by a non-admin
// user is rejected before anything is persisted. The session counts as
// established only once the auth record is durably stored; a persistence
// failure fails the whole login even though the remote side accepted it.
func (s *Session) Login(ctx context.Context, url string, username string, password string) (*mattermost.User, error) {
	normalized := netx.NormalizeServerURL(url)
	s.client.SetURL(normalized)

	user, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.log.Warn(ctx, "login failed")
		return nil, classify(err, loginRules, CodeRemote, fallbackLogin)
	}

	if !user.IsSystemAdmin() {
		return nil, &Error{Code: CodeAccessDenied, Message: msgAccessDenied}
	}

	rec := credentials.AuthRecord{
		Token:     s.client.Token(),
		ServerURL: normalized,
		UserID:    user.ID,
		Username:  user.Username,
	}
	if err := s.creds.SaveAuthData(ctx, rec); err != nil {
		return nil, &Error{Code: CodeStorage, Message: err.Error()}
	}

	s.log.Info(ctx, "login succeeded", "username", user.Username)
	return user, nil
}

// Logout clears stored credentials and unconditionally resets the
// in-memory handle: a broken store must never leave the handle
// authenticated.
func (s *Session) Logout(ctx context.Context) {
	s.creds.ClearAll(ctx)
	s.client.SetToken("")
	s.client.SetURL("")
}

// IsAuthenticated reports whether the handle currently holds a token. This
// is a purely local check; it never contacts the server.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	s.Initialize(ctx)
	return s.client.Token() != ""
}

// ValidateToken verifies the current token against the server. Any remote
// rejection (expired token, revoked session, network failure) purges the
// stored session so the next start comes up cleanly unauthenticated.
func (s *Session) ValidateToken(ctx context.Context) bool {
	s.Initialize(ctx)

	if s.client.Token() == "" {
		return false
	}

	if _, err := s.client.GetMe(ctx); err != nil {
		s.log.Warn(ctx, "stored token is no longer valid")
		s.Logout(ctx)
		return false
	}
	return true
}

func (s *Session) SendPasswordResetEmail(ctx context.Context, email string) error {
	s.Initialize(ctx)

	if err := s.client.SendPasswordResetEmail(ctx, email); err != nil {
		return classify(err, passwordResetRules, CodeRemote, fallbackReset)
	}
	return nil
}

// SearchOptions tunes SearchUsers. The zero value gives the defaults:
// active users only, first page, a limit of 20 results.
type SearchOptions struct {
	AllowInactive bool
	Limit         int
	Page          int
}

// SearchUsers runs a server-side user search. The limit is defaulted and
// clamped to at most 100; a negative page reads as the first one.
func (s *Session) SearchUsers(ctx context.Context, term string, opts SearchOptions) ([]*mattermost.User, error) {
	s.Initialize(ctx)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	page := opts.Page
	if page < 0 {
		page = 0
	}

	users, err := s.client.SearchUsers(ctx, &mattermost.UserSearch{
		Term:          term,
		AllowInactive: opts.AllowInactive,
		Limit:         limit,
		Page:          page,
	})
	if err != nil {
		return nil, classify(err, nil, CodeRemote, fallbackSearchUsers)
	}
	return users, nil
}

func (s *Session) GetAllUsers(ctx context.Context, page int, perPage int) ([]*mattermost.User, error) {
	s.Initialize(ctx)

	if perPage <= 0 {
		perPage = defaultPageSize
	}
	users, err := s.client.GetProfiles(ctx, page, perPage)
	if err != nil {
		return nil, classify(err, nil, CodeRemote, fallbackFetchUsers)
	}
	return users, nil
}

func (s *Session) GetUsersByIds(ctx context.Context, ids []string) ([]*mattermost.User, error) {
	s.Initialize(ctx)

	users, err := s.client.GetProfilesByIds(ctx, ids)
	if err != nil {
		return nil, classify(err, nil, CodeRemote, fallbackFetchUsers)
	}
	return users, nil
}

func (s *Session) GetUser(ctx context.Context, userID string) (*mattermost.User, error) {
	s.Initialize(ctx)

	user, err := s.client.GetUser(ctx, userID)
	if err != nil {
		return nil, classify(err, updateActiveRules, CodeRemote, fallbackFetchUser)
	}
	return user, nil
}

func (s *Session) GetAllTeams(ctx context.Context) ([]*mattermost.Team, error) {
	s.Initialize(ctx)

	teams, err := s.client.GetTeams(ctx, 0, defaultPageSize)
	if err != nil {
		return nil, classify(err, nil, CodeRemote, fallbackFetchTeams)
	}
	return teams, nil
}

func (s *Session) GetAllRoles(ctx context.Context) ([]*mattermost.Role, error) {
	s.Initialize(ctx)

	roles, err := s.client.GetRolesByNames(ctx, builtinRoleNames)
	if err != nil {
		return nil, classify(err, nil, CodeRemote, fallbackFetchRoles)
	}
	return roles, nil
}

func (s *Session) UpdateUserActive(ctx context.Context, userID string, active bool) error {
	s.Initialize(ctx)

	if err := s.client.UpdateUserActive(ctx, userID, active); err != nil {
		return classify(err, updateActiveRules, CodeRemote, fallbackUpdateUser)
	}
	return nil
}

// Token, SetToken and URL are synchronous passthroughs to the client
// handle, exposed for the UI layer.
func (s *Session) Token() string       { return s.client.Token() }
func (s *Session) SetToken(tok string) { s.client.SetToken(tok) }
func (s *Session) URL() string         { return s.client.URL() }
