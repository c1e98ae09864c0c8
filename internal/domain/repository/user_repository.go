// Package repository defines the persistence contracts of the domain layer.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"hulkastorus/internal/domain/entity"
)

// Sentinel errors returned by implementations so use cases can map them to
// the application error taxonomy without knowing the storage engine.
var (
	// ErrUserNotFound is returned when no record matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when an insert loses the uniqueness race on
	// the email column.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository is the contract for the credential store. Each method maps
// to at most one read or one write; there are no multi-step transactions.
type UserRepository interface {
	// Create persists a new user record. The implementation fills in the
	// generated ID and timestamps on the passed entity.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their login email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Delete hard-deletes the record with the given ID. Returns
	// ErrUserNotFound when no record matches.
	Delete(ctx context.Context, id uuid.UUID) error
}
