package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Downforcedemon/MinimalHome/internal/app"
	"github.com/Downforcedemon/MinimalHome/internal/cache"
	"github.com/Downforcedemon/MinimalHome/internal/config"
	"github.com/Downforcedemon/MinimalHome/internal/database"
	"github.com/Downforcedemon/MinimalHome/internal/domain"
	"github.com/Downforcedemon/MinimalHome/internal/logging"
	"github.com/Downforcedemon/MinimalHome/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *database.DB {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("Failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, category cache disabled")
		return nil
	}

	client, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	db := setupDB(cfg)
	defer func() { _ = db.Close() }()

	redisClient := setupRedis(context.Background(), cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Repositories
	sessionRepo := database.NewSessionRepo(db)
	categoryRepo := database.NewCategoryRepo(db)
	limitRepo := database.NewLimitRepo(db)

	// Category lookups go through Redis when available, otherwise straight
	// to PostgreSQL.
	var lookup domain.CategoryLookup = categoryRepo
	var invalidator app.AssignmentCacheInvalidator
	if redisClient != nil {
		categoryCache := cache.NewCategoryCache(redisClient, categoryRepo)
		lookup = categoryCache
		invalidator = categoryCache
	}

	// Core components
	tracker := app.NewTracker(sessionRepo, clock)
	registry := app.NewRegistry(categoryRepo, lookup, invalidator)
	scorer := app.NewScorer(lookup)
	aggregator := app.NewAggregator(sessionRepo, lookup, scorer, clock, cfg.WeekStart)
	evaluator := app.NewLimitEvaluator(limitRepo, categoryRepo, lookup, aggregator, clock)

	// Pass nil explicitly to avoid a typed-nil interface inside the server.
	var srv *server.Server
	if redisClient != nil {
		srv = server.NewServer(cfg, tracker, registry, aggregator, evaluator, db, redisClient)
	} else {
		srv = server.NewServer(cfg, tracker, registry, aggregator, evaluator, db, nil)
	}

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
