package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/scrapeapi/accounts-api/docs"
	"github.com/scrapeapi/accounts-api/internal/api/handler"
	"github.com/scrapeapi/accounts-api/internal/api/middleware"
	"github.com/scrapeapi/accounts-api/internal/core/ports"
)

// Dependencies are the services and probes the router mounts.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Checks map[string]handler.DependencyCheck
	Log    zerolog.Logger

	// Metrics mounts the Prometheus middleware and GET /metrics.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Log))
	if deps.Metrics {
		e.Use(echoprometheus.NewMiddleware("accounts_http"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	requireUser := middleware.Auth(deps.Auth)

	e.GET("/", handler.Root)

	// --- Accounts ---
	e.GET("/user/:username", userHandler.Get)
	e.POST("/user", userHandler.Create)

	// --- Auth ---
	e.POST("/token", authHandler.Token)
	e.GET("/users/me/", userHandler.Me, requireUser)
	e.GET("/users/me", userHandler.Me, requireUser)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
