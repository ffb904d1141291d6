// Package main is the entry point for the Trip Guides API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryhearnchi/tripguides/internal/batch"
	"github.com/bryhearnchi/tripguides/internal/cache"
	"github.com/bryhearnchi/tripguides/internal/config"
	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/handler"
	"github.com/bryhearnchi/tripguides/internal/middleware"
	"github.com/bryhearnchi/tripguides/internal/repo"
	"github.com/bryhearnchi/tripguides/internal/service"
	"github.com/bryhearnchi/tripguides/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Migrations -------------------------------------------------------
	if cfg.AutoMigrate {
		if err := migrate(cfg.DatabaseURL); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// --- Database ---------------------------------------------------------
	// Connect verifies reachability with a retried probe and starts the
	// background health loop feeding /healthz.
	database, err := db.Connect(context.Background(), db.Config{
		DatabaseURL:        cfg.DatabaseURL,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
		HealthInterval:     cfg.HealthInterval,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	logger.Info("database connection established")

	// --- Cache ------------------------------------------------------------
	var store cache.Store
	if cfg.RedisAddr != "" {
		rs, err := cache.NewRedisStore(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = rs
		logger.Info("using redis cache", "addr", cfg.RedisAddr)
	} else {
		store = cache.NewMemoryStore()
		logger.Info("using in-process cache")
	}

	// --- Services ---------------------------------------------------------
	batcher := batch.New(database)
	guide := repo.NewGuide(database, batcher)
	tripSvc := service.NewTripService(repo.NewTripRepo(database), store, logger)
	guideSvc := service.NewGuideService(guide, store, logger)
	lookupSvc := service.NewLookupService(repo.NewLookupRepo(database), store, logger)
	srvHandler := handler.NewServer(tripSvc, guideSvc, lookupSvc, database, logger)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID -> RealIP -> SlogLogger -> Recoverer ->
	// CORS -> body size cap -> per-request timeout.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodySize))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// migrate applies all pending goose migrations from the embedded FS.
// goose needs database/sql, so this opens its own short-lived connection
// instead of borrowing the pgx pool.
func migrate(dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(sqlDB, ".")
}
