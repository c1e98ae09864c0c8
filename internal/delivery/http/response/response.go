// Package response contains the wire shapes shared by handlers and the
// centralized error handler.
package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hulkastorus/internal/domain/entity"
)

// ErrorBody is the single error shape of the API: a small JSON object with
// one generic message. Internal detail never appears here.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error writes an error response.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}

// User is the public representation of a user record. There is deliberately
// no password field of any kind.
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	InviteCode string    `json:"inviteCode"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewUser maps a domain entity to its public representation, stripping the
// password hash.
func NewUser(u *entity.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		InviteCode: u.InviteCode,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Login is the body returned by a successful credential sign-in.
type Login struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
