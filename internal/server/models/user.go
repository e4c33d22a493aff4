// Package models contains the persistent entities used by the server.
package models

import "time"

// User is a registered account. Password always holds the bcrypt hash,
// never the plaintext. Username is unique across all users.
type User struct {
	ID        int64
	Username  string
	Password  string
	CreatedAt time.Time
}
