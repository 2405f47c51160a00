package config

import "time"

// Config holds runtime settings for the recruitcli client.
//
// Fields:
//   - ServerAddr: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path to the local sqlite file holding session state.
//
// Units: RequestTimeout is a time.Duration (e.g., 15*time.Second).
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "recruitcli.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// environment variables, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
