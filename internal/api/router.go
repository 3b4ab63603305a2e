package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/credkit/webauth/internal/api/handler"
	"github.com/credkit/webauth/internal/api/middleware"
	"github.com/credkit/webauth/internal/core/service"
	"github.com/credkit/webauth/internal/infrastructure/cache"
	"github.com/credkit/webauth/internal/infrastructure/db/postgres"
	"github.com/credkit/webauth/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("webauth"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	projections := cache.NewUserCache(rdb)
	stats := cache.NewStats(rdb)
	sessions := session.NewRedisStore(rdb)

	authService := service.NewAuthService(userRepo, projections, stats, log)
	userService := service.NewUserService(userRepo, projections, log)

	authHandler := handler.NewAuthHandler(authService)
	homeHandler := handler.NewHomeHandler(userService, stats, log)

	mediate := middleware.Session(sessions, log)
	requireLogin := middleware.RequireLogin(stats, log)

	// --- Auth routes (session-mediated) ---
	e.GET("/register", authHandler.RegisterPage, mediate)
	e.POST("/register", authHandler.Register, mediate)
	e.GET("/login", authHandler.LoginPage, mediate)
	e.POST("/login", authHandler.Login, mediate)
	e.POST("/logout", authHandler.Logout, mediate)

	// --- Authenticated pages ---
	e.GET("/", homeHandler.Home, mediate, requireLogin)
	e.GET("/stats", homeHandler.Stats, mediate, requireLogin)

	// --- Health probes and metrics (no session, no auth) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
