// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"hulkastorus/internal/delivery/http/middleware"
	"hulkastorus/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Sign-out clears the session cookie and redirects to the landing page.
	e.GET("/logout", r.authHandler.Logout)
	e.POST("/logout", r.authHandler.Logout)

	v1 := e.Group("/api/v1")
	{
		v1.POST("/users", r.userHandler.Register)
		v1.DELETE("/users/:id", r.userHandler.Delete)
		v1.POST("/auth/login", r.authHandler.Login)
	}

	// Routes that require a valid session token.
	me := v1.Group("/me")
	me.Use(r.authMiddleware.Authenticate)
	{
		me.GET("", r.userHandler.Me)
	}
}
