// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account holder. PasswordHash is a bcrypt digest and is never
// serialised to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
