package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hulkastorus/internal/delivery/http/middleware"
	"hulkastorus/internal/delivery/http/validator"
	"hulkastorus/internal/domain/entity"
	domainerrors "hulkastorus/internal/domain/errors"
	mockUsecase "hulkastorus/internal/mocks/usecase"
	"hulkastorus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	return e
}

func registerBody() string {
	return `{
		"email": "test@example.com",
		"password": "Password123!",
		"firstName": "Test",
		"lastName": "User",
		"inviteCode": "hulk-beta"
	}`
}

func TestUserHandler_Register_Created(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.POST("/api/v1/users", NewUserHandler(uc, logger).Register)

	created := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		FirstName:    "Test",
		LastName:     "User",
		InviteCode:   "hulk-beta",
		PasswordHash: "hashed_password",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Run(func(ctx context.Context, input *usecase.RegisterInput) {
			assert.Equal(t, "test@example.com", input.Email)
			assert.Equal(t, "Password123!", input.Password)
		}).
		Return(&usecase.RegisterOutput{User: created}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(registerBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created.ID.String(), body["id"])
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "Test", body["firstName"])
	assert.Equal(t, "User", body["lastName"])

	// The stored hash must never leak through the wire shape.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestUserHandler_Register_MissingField(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.POST("/api/v1/users", NewUserHandler(uc, logger).Register)

	body := `{"email": "test@example.com", "password": "Password123!"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Missing required fields"}`, rec.Body.String())
}

func TestUserHandler_Register_MalformedBody(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.POST("/api/v1/users", NewUserHandler(uc, logger).Register)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "Missing required fields"}`, rec.Body.String())
}

func TestUserHandler_Register_CreationFailure(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.POST("/api/v1/users", NewUserHandler(uc, logger).Register)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil, domainerrors.ErrUserCreationFailed.WrapMessage("store unavailable"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(registerBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Failed to create user"}`, rec.Body.String())
}

func TestUserHandler_Delete_NoContent(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.DELETE("/api/v1/users/:id", NewUserHandler(uc, logger).Delete)

	userID := uuid.New()
	uc.EXPECT().Delete(mock.Anything, userID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.DELETE("/api/v1/users/:id", NewUserHandler(uc, logger).Delete)

	userID := uuid.New()
	uc.EXPECT().
		Delete(mock.Anything, userID).
		Return(domainerrors.ErrUserNotFound.WrapMessage("no user record to delete"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "User not found"}`, rec.Body.String())
}

func TestUserHandler_Delete_MalformedID(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.DELETE("/api/v1/users/:id", NewUserHandler(uc, logger).Delete)

	// No usecase expectation: an unparsable ID never reaches the store.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "User not found"}`, rec.Body.String())
}

func TestUserHandler_Delete_StoreFailure(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.DELETE("/api/v1/users/:id", NewUserHandler(uc, logger).Delete)

	userID := uuid.New()
	uc.EXPECT().
		Delete(mock.Anything, userID).
		Return(domainerrors.ErrUserDeletionFailed.WrapMessage("store unavailable"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Failed to delete user"}`, rec.Body.String())
}

func TestUserHandler_Me_Success(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewUserHandler(uc, logger)

	userID := uuid.New()
	stored := &entity.User{
		ID:        userID,
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
	}

	e := newTestEcho()
	e.GET("/api/v1/me", handler.Me, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ContextKeyUserID, userID)

			return next(c)
		}
	})

	uc.EXPECT().GetByID(mock.Anything, userID).Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["id"])
	assert.Equal(t, "test@example.com", body["email"])
}

func TestUserHandler_Me_NoSession(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newTestEcho()
	e.GET("/api/v1/me", NewUserHandler(uc, logger).Me)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid or expired token"}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	e.GET("/health", HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
