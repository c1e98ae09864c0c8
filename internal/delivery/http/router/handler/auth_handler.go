package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hulkastorus/config"
	"hulkastorus/internal/delivery/http/response"
	domainerrors "hulkastorus/internal/domain/errors"
	"hulkastorus/internal/domain/service"
	"hulkastorus/internal/usecase"
)

// LoginRequest is the typed schema of the credential sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	uc         usecase.SessionUsecase
	tokenSvc   service.TokenService
	cookieName string
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.SessionUsecase, tokenSvc service.TokenService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		tokenSvc:   tokenSvc,
		cookieName: cfg.Auth.CookieName,
		logger:     logger,
	}
}

// Login handles POST /api/v1/auth/login. Missing credentials, unknown email
// and wrong password all produce the identical failure; success returns the
// token and sets the session cookie for browser clients.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidCredentials.WrapMessage("malformed login body")
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidCredentials.WrapMessage("missing credentials")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.sessionCookie(output.Token, h.tokenSvc.TTL()))

	return c.JSON(http.StatusOK, response.Login{
		Token: output.Token,
		User:  response.NewUser(output.User),
	})
}

// Logout handles GET and POST /logout. Sessions are stateless signed tokens,
// so sign-out only instructs the client to discard the cookie, then
// redirects to the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	expired := h.sessionCookie("", 0)
	expired.MaxAge = -1
	expired.Expires = time.Unix(0, 0)
	c.SetCookie(expired)

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
