// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/jvadmin/internal/backend"
	"github.com/olegiv/jvadmin/internal/cache"
	"github.com/olegiv/jvadmin/internal/config"
	"github.com/olegiv/jvadmin/internal/console"
	"github.com/olegiv/jvadmin/internal/content"
	"github.com/olegiv/jvadmin/internal/handler"
	"github.com/olegiv/jvadmin/internal/loader"
	"github.com/olegiv/jvadmin/internal/logging"
	"github.com/olegiv/jvadmin/internal/middleware"
	"github.com/olegiv/jvadmin/internal/render"
	"github.com/olegiv/jvadmin/internal/scheduler"
	"github.com/olegiv/jvadmin/internal/service"
	"github.com/olegiv/jvadmin/internal/session"
	"github.com/olegiv/jvadmin/internal/store"
	"github.com/olegiv/jvadmin/internal/version"
	"github.com/olegiv/jvadmin/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   string
	appGitCommit string
	appBuildTime string
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second

	// Event log entries are kept for 90 days and pruned nightly.
	eventRetention         = 90 * 24 * time.Hour
	eventRetentionSchedule = "30 3 * * *"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "jvadmin - content admin console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_DB_PATH           SQLite database path (default: ./data/jvadmin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_BACKEND_URL       Content backend base URL (default: http://localhost:3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_ADMIN_EMAIL       Console login email\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_ADMIN_PASSWORD    Console login password\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_REDIS_URL         Redis URL for shared snapshots (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  JVADMIN_REFRESH_SCHEDULE  Cron schedule for snapshot refresh, empty disables\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}.Resolve()

	if *showVersion {
		_, _ = fmt.Printf("jvadmin %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.Open(startCtx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	schema, err := store.Migrate(startCtx, db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready", "schema_version", schema)

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	events := service.NewEventService(db)

	sessionManager := session.New(db, cfg.IsDevelopment(), cfg.SessionLifetime)
	gate := session.NewGate(sessionManager, cfg.AdminEmail, cfg.AdminPassword)

	snapshots, cacheBackend := cache.NewCache(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTLDuration(),
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() { _ = snapshots.Close() }()

	client, err := backend.New(backend.Config{
		BaseURL:   cfg.BackendURL,
		Timeout:   cfg.BackendTimeout,
		RateLimit: cfg.BackendRateLimit,
		Burst:     cfg.BackendBurst,
	})
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}
	slog.Info("content backend configured", "url", client.BaseURL(), "timeout", cfg.BackendTimeout)

	loaders := loader.New(client, events, snapshots, cfg.CacheTTLDuration(), logger)

	sched := scheduler.New(logger)
	if err := sched.Add(scheduler.RefreshJob(loaders, cfg.RefreshSchedule)); err != nil {
		return fmt.Errorf("scheduling snapshot refresh: %w", err)
	}
	if err := sched.Add(scheduler.RetentionJob(events, eventRetentionSchedule, eventRetention, logger)); err != nil {
		return fmt.Errorf("scheduling event retention: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.Templates(),
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	controller := console.New(gate, loaders, console.Settings{
		Version:         info.String(),
		BackendURL:      client.BaseURL(),
		CacheBackend:    cacheBackend,
		SessionLifetime: cfg.SessionLifetime.String(),
		RefreshSchedule: cfg.RefreshSchedule,
	}).WithJobs(sched)

	r := newRouter(routerDeps{
		sessionManager: sessionManager,
		gate:           gate,
		csrf:           middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr()),
		security:       middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		static:         web.Static(),
		auth:           handler.NewAuthHandler(gate, renderer, events, cfg.LoginRedirectDelay),
		console:        handler.NewConsoleHandler(controller, content.NewLogMutator(events, logger), renderer),
		jobs:           handler.NewSchedulerHandler(sched, renderer, events),
		health:         handler.NewHealthHandler(db, client, gate, info.Version).WithCache(snapshots, cacheBackend),
		requestTimeout: requestTimeout,
		accessLog:      true,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Reduced from 120s to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
