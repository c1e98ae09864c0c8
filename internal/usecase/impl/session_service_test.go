package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"hulkastorus/internal/domain/entity"
	domainerrors "hulkastorus/internal/domain/errors"
	"hulkastorus/internal/domain/repository"
	mockRepo "hulkastorus/internal/mocks/repository"
	mockSvc "hulkastorus/internal/mocks/service"
	"hulkastorus/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionServiceFixtures holds all test dependencies for session service tests.
type sessionServiceFixtures struct {
	service      usecase.SessionUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewSessionService(SessionServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return sessionServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func storedUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hashed_password",
	}
}

func TestSessionService_Login_Success(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := storedUser()
	input := &usecase.LoginInput{Email: user.Email, Password: "Password123!"}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(true)
	fx.tokenService.EXPECT().Generate(user).Return("signed.session.token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.session.token", output.Token)
	assert.Equal(t, user, output.User)
}

func TestSessionService_Login_MissingCredentials(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()

	cases := []struct {
		name  string
		input *usecase.LoginInput
	}{
		{"empty email", &usecase.LoginInput{Email: "", Password: "Password123!"}},
		{"empty password", &usecase.LoginInput{Email: "test@example.com", Password: ""}},
		{"both empty", &usecase.LoginInput{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := fx.service.Login(ctx, tc.input)

			assert.Error(t, err)
			assert.Nil(t, output)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		})
	}
}

func TestSessionService_Login_UnknownEmail(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "nobody@example.com", Password: "Password123!"}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := storedUser()
	input := &usecase.LoginInput{Email: user.Email, Password: "wrong"}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestSessionService_Login_FailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	user := storedUser()

	unknownFx := createTestSessionService(t)
	unknownFx.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, unknownErr := unknownFx.service.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	})

	mismatchFx := createTestSessionService(t)
	mismatchFx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	mismatchFx.hasher.EXPECT().Check("wrong", user.PasswordHash).Return(false)

	_, mismatchErr := mismatchFx.service.Login(ctx, &usecase.LoginInput{
		Email:    user.Email,
		Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, mismatchErr)

	var unknownApp, mismatchApp domainerrors.AppError
	require.True(t, errors.As(unknownErr, &unknownApp))
	require.True(t, errors.As(mismatchErr, &mismatchApp))
	assert.Equal(t, unknownApp.HTTPCode(), mismatchApp.HTTPCode())
	assert.Equal(t, unknownApp.Message(), mismatchApp.Message())
}

func TestSessionService_Login_StoreFailure(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "test@example.com", Password: "Password123!"}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, errors.New("connection refused"))

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestSessionService_Login_TokenSigningFailure(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	user := storedUser()
	input := &usecase.LoginInput{Email: user.Email, Password: "Password123!"}

	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.hasher.EXPECT().Check(input.Password, user.PasswordHash).Return(true)
	fx.tokenService.EXPECT().Generate(user).Return("", errors.New("no signing key"))

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
}
