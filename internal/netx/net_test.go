package netx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no scheme", "example.com", "https://example.com"},
		{"https kept", "https://example.com", "https://example.com"},
		{"http kept", "http://example.com", "http://example.com"},
		{"whitespace trimmed", "  chat.example.com  ", "https://chat.example.com"},
		{"path kept", "example.com/mattermost", "https://example.com/mattermost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeServerURL(tt.in))
		})
	}
}

func TestValidateServerURL(t *testing.T) {
	require.NoError(t, ValidateServerURL("example.com"))
	require.NoError(t, ValidateServerURL("http://localhost:8065"))

	require.Error(t, ValidateServerURL(""))
	require.Error(t, ValidateServerURL("   "))
	require.Error(t, ValidateServerURL("https://"))
}
