package usecase

import (
	"context"

	"hulkastorus/internal/domain/entity"
)

// LoginInput defines the data required to sign in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the signed session token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// SessionUsecase verifies credentials and issues stateless session tokens.
// Sign-out has no server-side counterpart: the token itself is the session,
// so invalidation is purely the client discarding it.
type SessionUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
