// Package mattermost contains the REST client for the Mattermost API v4:
// the Client interface consumed by the session layer, the wire models, and
// the net/http implementation.
package mattermost

import "context"

// Client is the handle to one Mattermost server. URL and token are mutable
// in-memory state applied to every subsequent request; they are never
// persisted here (persistence goes through the credential store).
type Client interface {
	SetURL(url string)
	URL() string
	SetToken(token string)
	Token() string

	// Ping probes the server's liveness endpoint.
	Ping(ctx context.Context) error

	// Login authenticates with credentials. On success the session token
	// issued by the server is retained on the handle.
	Login(ctx context.Context, loginID string, password string) (*User, error)

	// GetMe returns the user owning the current session token.
	GetMe(ctx context.Context) (*User, error)

	SendPasswordResetEmail(ctx context.Context, email string) error

	SearchUsers(ctx context.Context, search *UserSearch) ([]*User, error)
	GetProfiles(ctx context.Context, page int, perPage int) ([]*User, error)
	GetProfilesByIds(ctx context.Context, ids []string) ([]*User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	GetTeams(ctx context.Context, page int, perPage int) ([]*Team, error)
	GetRolesByNames(ctx context.Context, names []string) ([]*Role, error)
	UpdateUserActive(ctx context.Context, userID string, active bool) error
}
