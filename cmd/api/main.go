// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the courthouse kiosk HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire stores, services and HTTP handlers.
//  7. Run the HTTP server and the event bridge until a signal arrives.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/audiencia/internal/api"
	"github.com/taibuivan/audiencia/internal/auth"
	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/feed"
	"github.com/taibuivan/audiencia/internal/platform/config"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/events"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
	"github.com/taibuivan/audiencia/internal/platform/migration"
	"github.com/taibuivan/audiencia/internal/platform/objectstore"
	pgstore "github.com/taibuivan/audiencia/internal/platform/postgres"
	redisstore "github.com/taibuivan/audiencia/internal/platform/redis"
	"github.com/taibuivan/audiencia/internal/platform/sec"
	"github.com/taibuivan/audiencia/internal/registration"
	"github.com/taibuivan/audiencia/internal/session"
	"github.com/taibuivan/audiencia/internal/taxonomy"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("timezone", cfg.Timezone),
		slog.Bool("archive", cfg.ArchiveEnabled()),
		slog.Bool("breakglass", cfg.BreakGlassEnabled()),
	)

	// Root context cancelled by SIGINT or SIGTERM.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
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

	// ── 6. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	revocations := auth.NewRevocationStore(rdb)

	// ── 7. Observability ──────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// ── 8. Change Notifications ───────────────────────────────────────────
	// Services publish to Redis so every replica's hub sees every change.
	hub := events.NewHub()
	bridge := events.NewRedisBridge(rdb, constants.RedisChannelEvents, hub, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	loc := cfg.Location()

	taxonomyService := taxonomy.NewService(taxonomy.NewPostgresRepository(pool), bridge, appMetrics, log)

	registrationService := registration.NewService(
		registration.NewPostgresRepository(pool), taxonomyService, bridge, appMetrics, log, loc,
	)
	if cfg.ArchiveEnabled() {
		archive, err := objectstore.New(startupCtx, objectstore.Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			Bucket:    cfg.S3Bucket,
		})
		must(log, err, "connect to object storage")
		registrationService.WithArchive(archive)
	}

	directoryService := directory.NewService(
		directory.NewPostgresRepository(pool), revocations, bridge, log, cfg.PasswordHashCost,
	)

	var breakGlass auth.BreakGlass
	if cfg.BreakGlassEnabled() {
		breakGlass = auth.BreakGlass{Email: cfg.BreakGlassEmail, PasswordHash: cfg.BreakGlassPasswordHash}
	}
	authService := auth.NewService(directoryService, tokens, revocations, breakGlass, appMetrics, log)

	// ── 10. Health handlers (wired with real dependency checkers) ─────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Metrics:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Registrations: registration.NewHandler(registrationService),
		Taxonomy:      taxonomy.NewHandler(taxonomyService),
		Directory:     directory.NewHandler(directoryService),
		Auth:          auth.NewHandler(authService),
		Session:       session.NewHandler(health.Ready),
		Feed:          feed.NewHandler(registrationService, directoryService, hub, appMetrics, cfg.AllowedOrigins(), log),
	}

	server := api.NewServer(rootCtx, cfg, log, api.Security{Verifier: tokens, Revocations: revocations}, appMetrics, handlers)

	// ── 12. Run Until Signal ──────────────────────────────────────────────
	group, groupCtx := errgroup.WithContext(rootCtx)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return bridge.Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

		// Closing the hub releases every feed socket.
		hub.Close()
		return server.Shutdown(constants.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
