package mattermost

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUser_IsSystemAdmin(t *testing.T) {
	tests := []struct {
		name  string
		roles string
		want  bool
	}{
		{"admin only", "system_admin", true},
		{"admin among others", "system_admin system_user", true},
		{"admin last", "system_user system_admin", true},
		{"plain user", "system_user", false},
		{"empty", "", false},
		{"superstring does not match", "system_administrator", false},
		{"substring does not match", "not_system_admin_role", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.roles}
			require.Equal(t, tt.want, u.IsSystemAdmin())
		})
	}
}

func TestUser_IsSSO(t *testing.T) {
	require.True(t, (&User{AuthService: "saml"}).IsSSO())
	require.True(t, (&User{AuthService: "ldap"}).IsSSO())
	require.False(t, (&User{AuthService: ""}).IsSSO())
	require.False(t, (&User{AuthService: "   "}).IsSSO())
}

func TestUser_IsActive(t *testing.T) {
	require.True(t, (&User{DeleteAt: 0}).IsActive())
	require.False(t, (&User{DeleteAt: 1692300000000}).IsActive())
}
