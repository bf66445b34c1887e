package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mshlentov/cinescope/internal/api/docs"
	"github.com/mshlentov/cinescope/internal/api/handler"
	"github.com/mshlentov/cinescope/internal/api/middleware"
	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
	"github.com/mshlentov/cinescope/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs to serve the twin.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Movies ports.MovieService
	Log    zerolog.Logger
	// Ready lists the backing stores checked by /health/ready.
	Ready map[string]handlers.Pinger
	// Registry receives the HTTP metrics. Each router gets its own so several
	// twins can live in one process.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Auth and catalog routes share one router, so the twin's auth and API base
// URLs are the same.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "twin",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	movieHandler := handler.NewMovieHandler(deps.Movies)
	genreHandler := handler.NewGenreHandler()
	auth := middleware.Auth(deps.Auth)

	admins := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)
	superAdmin := middleware.RBAC(domain.RoleSuperAdmin)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout, auth)

	// --- User routes ---
	e.POST("/user", userHandler.Create, auth, superAdmin)
	e.GET("/user/:id", userHandler.Get, auth, admins)
	e.DELETE("/user/:id", userHandler.Delete, auth, superAdmin)

	// --- Catalog routes ---
	e.GET("/movies", movieHandler.List)
	e.POST("/movies", movieHandler.Create, auth, admins)
	e.GET("/movies/:id", movieHandler.Get)
	e.PATCH("/movies/:id", movieHandler.Update, auth, admins)
	e.DELETE("/movies/:id", movieHandler.Delete, auth, superAdmin)
	e.GET("/genres", genreHandler.List)
	e.GET("/genres/:id", genreHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
