package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files. Durations
// use timex.Duration so files may say "5s" or give integer nanoseconds.
type FileConfig struct {
	ServerURL      string          `json:"server_url" yaml:"server_url"`
	SessionFile    string          `json:"session_file" yaml:"session_file"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// loadFile overlays c with the file at path. YAML is chosen by the .yaml or
// .yml extension, JSON otherwise. Empty fields in the file are ignored.
func (c *Config) loadFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ServerURL != "" {
		c.ServerURL = fc.ServerURL
	}
	if fc.SessionFile != "" {
		c.SessionFile = fc.SessionFile
	}
	if fc.RequestTimeout != nil {
		c.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}
