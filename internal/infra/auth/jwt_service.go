// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"hulkastorus/config"
	"hulkastorus/internal/domain/entity"
	"hulkastorus/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using
// HMAC-signed JWTs. The token it issues is the whole session state.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    cfg.Auth.TokenTTL,
	}, nil
}

// Generate issues a signed session token carrying the user's ID, email and
// display name.
func (s *jwtService) Generate(user *entity.User) (string, error) {
	now := time.Now()
	claims := &service.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string and returns its
// claims. Verification is purely cryptographic; no server-side state is
// consulted.
func (s *jwtService) Validate(tokenString string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Reject any signing method other than the HMAC family.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}

// TTL returns the configured session token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
