package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "hulkastorus/internal/delivery/context"
	domainerrors "hulkastorus/internal/domain/errors"
	"hulkastorus/internal/domain/repository"
	"hulkastorus/internal/domain/service"
	"hulkastorus/internal/usecase"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies credentials and issues a signed session token. Unknown
// email, empty credentials and wrong password all yield the identical
// failure so the caller cannot tell the cases apart.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("missing credentials")
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		srv.log(ctx).Error("Failed to look up login email", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to look up login email")
	}

	// bcrypt comparison is CPU-bound and happens outside any store access.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, err := srv.tokenService.Generate(user)
	if err != nil {
		srv.log(ctx).Error("Failed to sign session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to sign session token")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}
