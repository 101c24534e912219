package config

import "os"

// loadEnv applies GOPHTODO_SERVER and GOPHTODO_SESSION_FILE.
func (c *Config) loadEnv() {
	if v := os.Getenv("GOPHTODO_SERVER"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("GOPHTODO_SESSION_FILE"); v != "" {
		c.SessionFile = v
	}
}
