package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hulkastorus/config"
	domainerrors "hulkastorus/internal/domain/errors"
	"hulkastorus/internal/domain/service"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID        = "userID"
	ContextKeySessionClaims = "sessionClaims"
)

// AuthMiddleware verifies the stateless session token on each request. The
// token may arrive as a Bearer header (API clients) or as the session cookie
// (browsers); verification is signature-only, with no server-side lookup.
type AuthMiddleware struct {
	tokenSvc   service.TokenService
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:   tokenSvc,
		cookieName: cfg.Auth.CookieName,
	}
}

// Authenticate validates the session token and stores its claims on the
// echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := m.extractToken(c)
		if err != nil {
			return err
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken.WrapMessage("session token rejected")
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeySessionClaims, claims)

		return next(c)
	}
}

func (m *AuthMiddleware) extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return "", domainerrors.ErrInvalidToken.WrapMessage("authorization header is not a bearer token")
		}

		return tokenString, nil
	}

	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", errors.Wrap(domainerrors.ErrInvalidToken, "no session token presented")
	}

	return cookie.Value, nil
}
