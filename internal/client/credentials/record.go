// Package credentials persists the authenticated session as a small set of
// named values in the secure store: session token, server URL, and the
// optional user id / username enrichments.
package credentials

// Storage keys. The on-disk layout is four independent entries; there is no
// schema versioning.
const (
	keyToken     = "token"
	keyServerURL = "server_url"
	keyUserID    = "user_id"
	keyUsername  = "username"
)

// AuthRecord is the persisted session. UserID and Username are optional
// enrichments; an empty string means "absent".
type AuthRecord struct {
	Token     string
	ServerURL string
	UserID    string
	Username  string
}

// Present reports whether the record describes a usable session. Both the
// token and the server URL must be non-empty; the optional fields do not
// affect session validity.
func (r AuthRecord) Present() bool {
	return r.Token != "" && r.ServerURL != ""
}
