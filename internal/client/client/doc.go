// Package client contains the client-side API contract for gophtodo.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): account
//     signup, login and logout, the caller's email, and task CRUD.
//  2. A concrete HTTP implementation (see HTTPClient) that talks JSON to the
//     server and carries the session cookie on every request.
//  3. Session persistence (see SessionStore, FileSessionStore) so a login
//     survives between CLI invocations.
//
// # Error Handling
//
// Server responses are turned into *APIError values that unwrap to the
// sentinel errors in internal/common, so callers can match them with
// errors.Is (common.ErrorNotFound, common.ErrorUnauthenticated, ...).
// Transport failures match ErrUnavailable.
package client
