package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/assignhub/assignment-api/internal/api"
	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/service"
	"github.com/assignhub/assignment-api/internal/infrastructure/bootstrap"
	"github.com/assignhub/assignment-api/internal/infrastructure/db/postgres"
	"github.com/assignhub/assignment-api/internal/infrastructure/db/redis"
	"github.com/assignhub/assignment-api/internal/infrastructure/queue"
	"github.com/assignhub/assignment-api/internal/pkg/config"
	"github.com/assignhub/assignment-api/pkg/logger"
)

// @title        Project Assignment Portal API
// @version      1.0
// @description  Multi-tenant project assignment backend: users, customers, projects.
// @BasePath     /api
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "assignment-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, postgres.Config{
		URL:   cfg.DatabaseURL,
		Debug: cfg.Env == "development",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}

	// Redis backs the login throttle only; run without it when unreachable.
	var throttle service.LoginThrottle
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		rdb = nil
	} else {
		throttle = redis.NewLoginThrottle(rdb)
	}

	// Repositories.
	userRepo := postgres.NewRepository[domain.User](db, postgres.UserRelations, log)
	customerRepo := postgres.NewRepository[domain.Customer](db, postgres.CustomerRelations, log)
	projectRepo := postgres.NewRepository[domain.Project](db, postgres.ProjectRelations, log)
	auditRepo := postgres.NewRepository[domain.AuditEntry](db, postgres.AuditRelations, log)

	// Audit trail runs in the background until shutdown.
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	// Services.
	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute

	authService, err := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, cfg.JWTAlgorithm, tokenTTL, cfg.BcryptCost, log)
	if err != nil {
		log.Fatal().Err(err).Msg("auth service init failed")
	}
	userService := service.NewUserService(userRepo, authService, dispatcher, log)
	customerService := service.NewCustomerService(customerRepo, dispatcher, log)
	projectService := service.NewProjectService(projectRepo, dispatcher, log)

	if err := bootstrap.Seed(ctx, userService, cfg.Admin, log); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	e := api.NewRouter(api.Dependencies{
		Log:       log,
		DB:        db,
		Redis:     rdb,
		TokenTTL:  tokenTTL,
		Auth:      authService,
		Users:     userService,
		Customers: customerService,
		Projects:  projectService,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
