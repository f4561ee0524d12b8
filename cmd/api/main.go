// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

// Command api is the entry point for the Enciklopedija HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Construct outbound clients (JWT, object storage, translator).
//  7. Wire domain services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/api"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/audit"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/article"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/language"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/member"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/core/relation"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/config"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/constants"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/migration"
	pgstore "github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/postgres"
	redisstore "github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/redis"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/sec"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/storage"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/translator"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Outbound Clients ───────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	objectStore, err := storage.NewS3Store(startupCtx, cfg)
	must(log, err, "initialize object storage")

	translatorClient, err := translator.New(cfg)
	must(log, err, "initialize translation provider")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	auditRecorder := audit.NewRecorder(audit.NewPostgresStore(pool), log)

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	memberRepository := member.NewPostgresRepository(pool)
	memberService := member.NewService(memberRepository, objectStore, auditRecorder, log)
	memberHandler := member.NewHandler(memberService)

	relationRepository := relation.NewPostgresRepository(pool)
	relationService := relation.NewService(relationRepository, auditRecorder, log)
	relationHandler := relation.NewHandler(relationService)

	articleRepository := article.NewPostgresRepository(pool)
	articleService := article.NewService(articleRepository, translatorClient, auditRecorder, log)
	articleHandler := article.NewHandler(articleService)

	languageRepository := language.NewPostgresRepository(pool)
	languageService := language.NewService(languageRepository, log)
	languageHandler := language.NewHandler(languageService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Member:    memberHandler,
		Relation:  relationHandler,
		Article:   articleHandler,
		Language:  languageHandler,
	}

	server := api.NewServer(startupCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
