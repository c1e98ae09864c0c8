package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hulkastorus/config"
	"hulkastorus/internal/domain/entity"
	domainerrors "hulkastorus/internal/domain/errors"
	mockSvc "hulkastorus/internal/mocks/service"
	mockUsecase "hulkastorus/internal/mocks/usecase"
	"hulkastorus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authHandlerFixtures struct {
	echo         *echo.Echo
	uc           *mockUsecase.MockSessionUsecase
	tokenService *mockSvc.MockTokenService
}

func createTestAuthHandler(t *testing.T) authHandlerFixtures {
	uc := mockUsecase.NewMockSessionUsecase(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{CookieName: "session_token"}

	handler := NewAuthHandler(uc, tokenService, cfg, logger)

	e := newTestEcho()
	e.POST("/api/v1/auth/login", handler.Login)
	e.GET("/logout", handler.Logout)
	e.POST("/logout", handler.Logout)

	return authHandlerFixtures{
		echo:         e,
		uc:           uc,
		tokenService: tokenService,
	}
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()

	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	fx := createTestAuthHandler(t)

	user := &entity.User{
		ID:        uuid.New(),
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
	}

	fx.uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "test@example.com",
			Password: "Password123!",
		}).
		Return(&usecase.LoginOutput{Token: "signed.session.token", User: user}, nil)
	fx.tokenService.EXPECT().TTL().Return(30 * 24 * time.Hour)

	body := `{"email": "test@example.com", "password": "Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed.session.token", resp["token"])

	respUser, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), respUser["id"])
	assert.NotContains(t, respUser, "password")

	cookie := findCookie(t, rec, "session_token")
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.session.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(30*24*time.Hour/time.Second), cookie.MaxAge)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	fx := createTestAuthHandler(t)

	fx.uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch"))

	body := `{"email": "test@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid email or password"}`, rec.Body.String())

	// No session cookie is set on failure.
	assert.Nil(t, findCookie(t, rec, "session_token"))
}

func TestAuthHandler_Login_MissingCredentials(t *testing.T) {
	fx := createTestAuthHandler(t)

	// Validation fails before the usecase is consulted, with the same
	// generic body as a wrong password.
	body := `{"email": "test@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Invalid email or password"}`, rec.Body.String())
}

func TestAuthHandler_Login_InternalFailure(t *testing.T) {
	fx := createTestAuthHandler(t)

	fx.uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInternalError.WrapMessage("store unavailable"))

	body := `{"email": "test@example.com", "password": "Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, rec.Body.String())
}

func TestAuthHandler_Logout_RedirectsAndClearsCookie(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			fx := createTestAuthHandler(t)

			req := httptest.NewRequest(method, "/logout", nil)
			req.AddCookie(&http.Cookie{Name: "session_token", Value: "signed.session.token"})
			rec := httptest.NewRecorder()
			fx.echo.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

			cookie := findCookie(t, rec, "session_token")
			require.NotNil(t, cookie)
			assert.Empty(t, cookie.Value)
			assert.Negative(t, cookie.MaxAge)
		})
	}
}

// Logout works the same with no session at all; there is no server-side
// state to tear down.
func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	fx := createTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}
