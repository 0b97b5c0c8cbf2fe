// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record. The password is stored only as a one-way hash;
// the plaintext never leaves the hashing step.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
