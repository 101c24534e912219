// Package cli provides the gophtodo command-line client.
//
// Commands:
//   - signup, login, logout, whoami
//   - tasks list | add | edit | done | undone | rm
//
// The session token from login is kept in a local file (mode 0600) and sent
// as the session cookie on later invocations.
package cli
