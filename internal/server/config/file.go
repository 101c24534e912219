package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config for decoding config files. Pointer fields tell
// "absent" apart from a zero value, so a file only overrides what it names.
type FileConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn" yaml:"database_dsn"`
	StorageType                  *string         `json:"storage_type" yaml:"storage_type"`
	SecretKey                    *string         `json:"secret_key" yaml:"secret_key"`
	SessionTokenValidityDuration *timex.Duration `json:"session_token_validity_duration" yaml:"session_token_validity_duration"`
	Production                   *bool           `json:"production" yaml:"production"`
	AllowedOrigin                *string         `json:"allowed_origin" yaml:"allowed_origin"`
	SignupRateLimit              *int            `json:"signup_rate_limit" yaml:"signup_rate_limit"`
	SignupRateWindow             *timex.Duration `json:"signup_rate_window" yaml:"signup_rate_window"`
	EnforceTaskOwnership         *bool           `json:"enforce_task_ownership" yaml:"enforce_task_ownership"`
	ShutdownTimeout              *timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. Without the flag
// nothing happens; an unreadable or malformed file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(config *Config) {
	setIf(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, fc.DatabaseDSN)
	setIf(&config.StorageType, fc.StorageType)
	setIf(&config.SecretKey, fc.SecretKey)
	setIf(&config.Production, fc.Production)
	setIf(&config.AllowedOrigin, fc.AllowedOrigin)
	setIf(&config.SignupRateLimit, fc.SignupRateLimit)
	setIf(&config.EnforceTaskOwnership, fc.EnforceTaskOwnership)

	if fc.SessionTokenValidityDuration != nil {
		config.SessionTokenValidityDuration = fc.SessionTokenValidityDuration.Duration
	}
	if fc.SignupRateWindow != nil {
		config.SignupRateWindow = fc.SignupRateWindow.Duration
	}
	if fc.ShutdownTimeout != nil {
		config.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
