package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the gophtodo CLI.
//
// Fields:
//   - ServerURL: base URL of the gophtodo HTTP API.
//   - SessionFile: where the session token is kept between runs.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	SessionFile    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.SessionFile = defaultSessionFile()
	c.RequestTimeout = 10 * time.Second
}

// Load builds a Config from defaults, the file at path (skipped when path
// is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "gophtodo", "session.json")
}
