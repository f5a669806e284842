package mattermost

import "strings"

// SystemAdminRole is the role name that gates access to this application.
const SystemAdminRole = "system_admin"

// User is the Mattermost user profile as returned by the API. Roles is a
// space-delimited list of role names.
type User struct {
	ID             string `json:"id"`
	CreateAt       int64  `json:"create_at"`
	UpdateAt       int64  `json:"update_at"`
	DeleteAt       int64  `json:"delete_at"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Nickname       string `json:"nickname"`
	Email          string `json:"email"`
	Position       string `json:"position"`
	Roles          string `json:"roles"`
	AuthService    string `json:"auth_service"`
	Locale         string `json:"locale"`
	LastActivityAt int64  `json:"last_activity_at,omitempty"`
}

// IsSystemAdmin reports whether the user carries the system_admin role.
// Matching is on whole space-delimited tokens: a role named
// "system_administrator" does not count.
func (u *User) IsSystemAdmin() bool {
	for _, role := range strings.Fields(u.Roles) {
		if role == SystemAdminRole {
			return true
		}
	}
	return false
}

// IsSSO reports whether the user authenticates through an external provider
// (LDAP, SAML, OAuth, ...). Such users have no local password to reset.
func (u *User) IsSSO() bool {
	return strings.TrimSpace(u.AuthService) != ""
}

// IsActive reports whether the user has not been deactivated.
func (u *User) IsActive() bool {
	return u.DeleteAt == 0
}

// Team is a Mattermost team summary.
type Team struct {
	ID              string `json:"id"`
	CreateAt        int64  `json:"create_at"`
	UpdateAt        int64  `json:"update_at"`
	DeleteAt        int64  `json:"delete_at"`
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	CompanyName     string `json:"company_name"`
	AllowedDomains  string `json:"allowed_domains"`
	InviteID        string `json:"invite_id"`
	AllowOpenInvite bool   `json:"allow_open_invite"`
}

// Role is a Mattermost role definition.
type Role struct {
	ID            string   `json:"id"`
	CreateAt      int64    `json:"create_at"`
	UpdateAt      int64    `json:"update_at"`
	DeleteAt      int64    `json:"delete_at"`
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	Description   string   `json:"description"`
	Permissions   []string `json:"permissions"`
	SchemeManaged bool     `json:"scheme_managed"`
	BuiltIn       bool     `json:"built_in"`
}

// UserSearch is the request body for the user search endpoint.
type UserSearch struct {
	Term          string `json:"term"`
	AllowInactive bool   `json:"allow_inactive"`
	Limit         int    `json:"limit,omitempty"`
	Page          int    `json:"page,omitempty"`
}
