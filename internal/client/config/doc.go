// Package config handles configuration for the gophtodo command-line client.
//
// Settings are layered: built-in defaults, then an optional JSON or YAML
// file, then environment variables. Command flags are applied last by the
// CLI itself.
package config
