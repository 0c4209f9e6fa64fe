package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/warisan/heritage-api/docs"
	"github.com/warisan/heritage-api/internal/api/handler"
	"github.com/warisan/heritage-api/internal/api/middleware"
	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

// Deps carries the constructed services and clients the router wires up.
// Services are built in cmd/server so the audit dispatcher can share the
// process lifecycle.
type Deps struct {
	DB              *mongo.Database
	Redis           *redis.Client
	Tokens          ports.TokenService
	AuthService     ports.AuthService
	ContentService  ports.ContentService
	UserService     ports.UserService
	CategoryService ports.CategoryService
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Ordering on protected routes is fixed: authentication runs before any
// permission check, and permission checks run before handlers touch the
// lifecycle or the store.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("heritage"))

	authMW := middleware.Auth(d.Tokens)
	optionalMW := middleware.OptionalAuth(d.Tokens)
	reviewMW := middleware.RequirePermission(domain.PermReviewSubmission)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	v1 := e.Group("/v1")
	v1.GET("/me", authHandler.Me, authMW)

	// --- Content & moderation lifecycle ---
	contentHandler := handler.NewContentHandler(d.ContentService)
	v1.GET("/contents", contentHandler.List, optionalMW)
	v1.GET("/contents/:id", contentHandler.Get, optionalMW)
	v1.POST("/contents", contentHandler.Create, authMW, middleware.RequirePermission(domain.PermCreateContent))
	v1.PUT("/contents/:id", contentHandler.Update, authMW)
	v1.DELETE("/contents/:id", contentHandler.Delete, authMW)
	v1.POST("/contents/:id/submit", contentHandler.Submit, authMW)
	v1.POST("/contents/:id/resubmit", contentHandler.Resubmit, authMW)
	v1.POST("/contents/:id/review", contentHandler.Review, authMW, reviewMW)
	v1.POST("/contents/:id/archive", contentHandler.Archive, authMW, reviewMW)
	v1.POST("/contents/:id/restore", contentHandler.Restore, authMW, reviewMW)

	// Anonymous endangered-culture reports.
	v1.POST("/reports", contentHandler.SubmitReport, optionalMW)

	// --- Categories ---
	categoryHandler := handler.NewCategoryHandler(d.CategoryService)
	manageCatMW := middleware.RequirePermission(domain.PermManageCategories)
	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Create, authMW, manageCatMW)
	v1.PUT("/categories/:id", categoryHandler.Update, authMW, manageCatMW)
	v1.DELETE("/categories/:id", categoryHandler.Delete, authMW, manageCatMW)

	// --- User administration ---
	userHandler := handler.NewUserHandler(d.UserService)
	users := v1.Group("/users", authMW, middleware.RequirePermission(domain.PermManageUsers))
	users.GET("", userHandler.List)
	users.PUT("/:id/role", userHandler.UpdateRole)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
