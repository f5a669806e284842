package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "https://example.com", "-x", "junk"}, []string{"-a"})
	require.Equal(t, []string{"-a", "https://example.com"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-v"}, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-d", "-a", "srv"}, []string{"-d"})
	require.Equal(t, []string{"-d"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "x"}, nil)
	require.Empty(t, got)
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"mmadmin", "-c", "conf.json"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"mmadmin", "-config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"mmadmin"}
	require.Equal(t, "", JsonConfigFlags())
}
