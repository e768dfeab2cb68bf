// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pricecompare/internal/delivery/api/middleware"
	"pricecompare/internal/delivery/api/router/handler"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account lifecycle
	e.POST("/register", r.accountHandler.Register)
	e.POST("/login", r.accountHandler.Login)
	e.POST("/verify_account", r.accountHandler.VerifyAccount)

	// Routes that require a valid access token
	accountsGroup := e.Group("/accounts")
	accountsGroup.Use(r.authMiddleware.Authenticate)
	{
		accountsGroup.GET("/me", r.accountHandler.Me)
	}
}
