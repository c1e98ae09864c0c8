// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hulkastorus/internal/delivery/http/middleware"
	"hulkastorus/internal/delivery/http/response"
	domainerrors "hulkastorus/internal/domain/errors"
	"hulkastorus/internal/usecase"
)

// RegisterRequest is the typed schema of the registration payload. All five
// fields are required; anything else is rejected as a validation error.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	InviteCode string `json:"inviteCode" validate:"required"`
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles POST /api/v1/users. Success is 201 with the created user,
// with every password field stripped.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrMissingFields.WrapMessage("malformed registration body")
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrMissingFields.WrapMessage("registration body failed validation")
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, response.NewUser(output.User))
}

// Delete handles DELETE /api/v1/users/:id. Success is 204 with an empty
// body; an unknown or unparsable ID is 404 because no record matches it.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrUserNotFound.WrapMessage("malformed user id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/me, resolving the verified session token back to
// the current user record.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("no user id on context")
	}

	user, err := h.uc.GetByID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewUser(user))
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
