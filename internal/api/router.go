package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	_ "github.com/assignhub/assignment-api/docs"
	"github.com/assignhub/assignment-api/internal/api/handler"
	"github.com/assignhub/assignment-api/internal/api/middleware"
	"github.com/assignhub/assignment-api/internal/core/ports"
	"github.com/assignhub/assignment-api/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router wires together.
type Dependencies struct {
	Log      zerolog.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	TokenTTL time.Duration

	Auth      ports.AuthService
	Users     ports.UserService
	Customers ports.CustomerService
	Projects  ports.ProjectService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.TokenTTL)
	userHandler := handler.NewUserHandler(deps.Users, authHandler)
	customerHandler := handler.NewCustomerHandler(deps.Customers)
	projectHandler := handler.NewProjectHandler(deps.Projects)

	authRequired := middleware.Auth(deps.Auth)
	adminOnly := middleware.Admin()

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	g := e.Group("/api")

	// --- Auth routes ---
	g.POST("/login", authHandler.Login)
	g.POST("/logout", authHandler.Logout, authRequired)

	// --- User routes ---
	g.POST("/user", userHandler.Create)
	g.PATCH("/user", userHandler.UpdateSelf, authRequired)
	g.GET("/users/me", userHandler.Me, authRequired)
	g.GET("/user/:id", userHandler.Get, authRequired, adminOnly)
	g.GET("/users", userHandler.List, authRequired, adminOnly)
	g.DELETE("/user/:id", userHandler.Delete, authRequired, adminOnly)
	g.PATCH("/user/:id/project", userHandler.UpdateProject, authRequired, adminOnly)

	// --- Customer routes ---
	g.POST("/customer", customerHandler.Create, authRequired, adminOnly)
	g.GET("/customer", customerHandler.Get, authRequired)
	g.GET("/customers", customerHandler.List, authRequired)
	g.PATCH("/customer/:id", customerHandler.Update, authRequired, adminOnly)
	g.DELETE("/customer/:id", customerHandler.Delete, authRequired, adminOnly)

	// --- Project routes ---
	g.POST("/project", projectHandler.Create, authRequired, adminOnly)
	g.GET("/project", projectHandler.Get, authRequired)
	g.GET("/projects", projectHandler.List, authRequired)
	g.PATCH("/project/:id", projectHandler.Update, authRequired, adminOnly)
	g.DELETE("/project/:id", projectHandler.Delete, authRequired, adminOnly)

	return e
}
