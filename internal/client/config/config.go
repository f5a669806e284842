package config

import "time"

// Config holds runtime settings for the mmadmin CLI.
//
// Fields:
//   - ServerURL: base URL of the Mattermost server (may be empty; the user
//     can set it interactively with the server command).
//   - DatabasePath: path to the local SQLite credential database.
//   - KeyPath: path to the credential encryption key file.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerURL           string
	DatabasePath        string
	KeyPath             string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = ""
	c.DatabasePath = "mmadmin.db"
	c.KeyPath = "mmadmin.key"
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
