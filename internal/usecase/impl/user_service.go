// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "hulkastorus/internal/delivery/context"
	"hulkastorus/internal/domain/entity"
	domainerrors "hulkastorus/internal/domain/errors"
	"hulkastorus/internal/domain/repository"
	"hulkastorus/internal/domain/service"
	"hulkastorus/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, hashes the password and persists a new user
// record. Every persistence failure, the email uniqueness race included,
// surfaces as the same generic creation failure.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if hasMissingFields(input) {
		srv.log(ctx).Warn("Registration rejected, incomplete input", slog.String("email", input.Email))

		return nil, domainerrors.ErrMissingFields.WrapMessage("registration input incomplete")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrUserCreationFailed.WrapMessage("failed to hash password")
	}

	newUser := &entity.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		InviteCode:   input.InviteCode,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			srv.log(ctx).Warn("Registration lost email uniqueness race", slog.String("email", input.Email))
		} else {
			srv.log(ctx).Error("Failed to create user record", slog.String("email", input.Email), slog.Any("error", err))
		}

		return nil, domainerrors.ErrUserCreationFailed.WrapMessage("failed to create user record")
	}

	srv.log(ctx).Debug("User registered", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Delete hard-deletes a user record by ID. A second delete of the same ID
// yields the not-found error: the operation is idempotent at the data level
// only.
func (srv *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Delete of absent user", slog.Any("userID", id))

			return domainerrors.ErrUserNotFound.WrapMessage("no user record to delete")
		}

		srv.log(ctx).Error("Failed to delete user record", slog.Any("userID", id), slog.Any("error", err))

		return domainerrors.ErrUserDeletionFailed.WrapMessage("failed to delete user record")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))

	return nil
}

// GetByID loads the user a verified session token refers to. A token whose
// account has since been deleted is treated as no longer valid.
func (srv *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Session refers to a deleted account", slog.Any("userID", id))

			return nil, domainerrors.ErrInvalidToken.WrapMessage("session user no longer exists")
		}

		srv.log(ctx).Error("Failed to load user", slog.Any("userID", id), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to load user")
	}

	return user, nil
}

func hasMissingFields(input *usecase.RegisterInput) bool {
	for _, field := range []string{
		input.Email,
		input.Password,
		input.FirstName,
		input.LastName,
		input.InviteCode,
	} {
		if strings.TrimSpace(field) == "" {
			return true
		}
	}

	return false
}
