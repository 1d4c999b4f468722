package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/taskplan/taskplan-go/internal/config"
	"github.com/taskplan/taskplan-go/internal/crypto"
	"github.com/taskplan/taskplan-go/internal/handler"
	"github.com/taskplan/taskplan-go/internal/middleware"
	"github.com/taskplan/taskplan-go/internal/repository"
	"github.com/taskplan/taskplan-go/internal/service"
	"github.com/taskplan/taskplan-go/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	if cfg.Env == "production" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	ctx := context.Background()

	// Primary store. Without it there is nothing to serve.
	mongo, err := repository.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer mongo.Close(context.Background())

	userRepo := repository.NewUserRepository(mongo)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("user index creation failed", "error", err)
		os.Exit(1)
	}
	taskRepo := repository.NewTaskRepository(mongo)

	// Advisory store. A failure here degrades stats and metadata, nothing else.
	pg, err := repository.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		slog.Warn("postgres connection failed — metadata store disabled", "error", err)
		pg = nil
	} else {
		defer pg.Close()
		if err := repository.RunMigrations(ctx, pg); err != nil {
			slog.Warn("postgres migrations failed — metadata store disabled", "error", err)
			pg.Close()
			pg = nil
		}
	}

	if cfg.AdminPassword != "" {
		hash, err := crypto.HashPassword(cfg.AdminPassword)
		if err != nil {
			slog.Error("admin password hash failed", "error", err)
			os.Exit(1)
		}
		if err := userRepo.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, hash); err != nil {
			slog.Error("admin provisioning failed", "error", err)
			os.Exit(1)
		}
		slog.Info("admin account provisioned", "username", cfg.AdminUsername)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	taskService := service.NewTaskService(taskRepo, repository.NewMetadataRepository(pg))

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	healthHandler := handler.NewHealthHandler(mongo, pg, taskService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/api/health", healthHandler.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret, userRepo))
		r.Get("/api/auth/verify", authHandler.HandleVerify)

		r.Get("/api/tasks", taskHandler.HandleList)
		r.Post("/api/tasks", taskHandler.HandleCreate)
		r.Put("/api/tasks/{id}", taskHandler.HandleUpdate)
		r.Delete("/api/tasks/{id}", taskHandler.HandleDelete)
		r.Get("/api/stats", taskHandler.HandleStats)
	})

	r.Handle("/*", web.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
