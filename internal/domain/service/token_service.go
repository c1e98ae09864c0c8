package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hulkastorus/internal/domain/entity"
)

// SessionClaims is the payload of the stateless session token. The token is
// the session: it is verified per request by its signature, never by a
// server-side lookup.
type SessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
type TokenService interface {
	// Generate issues a signed session token for the given user, carrying
	// their ID, email and display name.
	Generate(user *entity.User) (string, error)

	// Validate checks the signature and expiry of a token string and returns
	// its claims.
	Validate(tokenString string) (*SessionClaims, error)

	// TTL returns the configured session token lifetime.
	TTL() time.Duration
}
