// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single persistent entity of the account service. The password
// is held only as a one-way hash; the plaintext never touches this struct.
type User struct {
	ID           uuid.UUID // Unique identifier, generated at creation, never reused.
	Email        string    // Login identifier, unique across the store.
	FirstName    string
	LastName     string
	InviteCode   string // Accepted at registration, stored verbatim, not validated against any registry.
	PasswordHash string // bcrypt output, never the raw secret.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is the name carried in the session token.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
