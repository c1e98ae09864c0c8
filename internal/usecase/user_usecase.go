// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"hulkastorus/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account. All
// five fields are required and must be non-empty.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	InviteCode string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user. The password hash is on the
// entity but must never be serialized by the delivery layer.
type RegisterOutput struct {
	User *entity.User
}

// UserUsecase defines the interface for user lifecycle operations.
// This is the contract that the delivery layer (API handlers) depends on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
