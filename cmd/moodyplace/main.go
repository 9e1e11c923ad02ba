// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command moodyplace runs the A Moody Place site API: the public JSON
// endpoints for songs, posts, shows, photos, contact and newsletter,
// and the token-protected admin CMS API behind /api/admin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/amoodyplace/moodyplace-go/internal/auth"
	"github.com/amoodyplace/moodyplace-go/internal/config"
	"github.com/amoodyplace/moodyplace-go/internal/handler"
	"github.com/amoodyplace/moodyplace-go/internal/logging"
	"github.com/amoodyplace/moodyplace-go/internal/middleware"
	"github.com/amoodyplace/moodyplace-go/internal/render"
	"github.com/amoodyplace/moodyplace-go/internal/scheduler"
	"github.com/amoodyplace/moodyplace-go/internal/service"
	"github.com/amoodyplace/moodyplace-go/internal/session"
	"github.com/amoodyplace/moodyplace-go/internal/store"
	"github.com/amoodyplace/moodyplace-go/internal/version"
)

// Fixed-window rate limits, counted per client IP.
const (
	rateWindow   = 15 * time.Minute
	generalLimit = 100
	apiLimit     = 50
	authLimit    = 5
)

// Analytics events older than this are pruned by the daily job.
const eventRetention = 365 * 24 * time.Hour

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "moodyplace - A Moody Place site and CMS API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_JWT_SECRET         Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_DB_HOST            MySQL host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_DB_NAME            MySQL database name (default: amoodyplace)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_DB_PASSWORD        MySQL password (required outside development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_SITE_URL           Canonical public URL (default: https://a-moody-place.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AMP_CORS_ORIGINS       Allowed CORS origins, comma separated\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/amoodyplace/moodyplace-go\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("moodyplace %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration; this fails fast on missing or weak secrets.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Initialize database
	slog.Info("connecting to database", "host", cfg.DBHost, "name", cfg.DBName,
		"max_open_conns", cfg.DBMaxOpenConns)
	db, err := store.OpenWithConfig(cfg.DSN(), store.DBConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		ConnMaxIdleTime: 5 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db.DB); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	eventRepo := store.NewEventRepo(db)

	// Upgrade logger to also mirror WARN and ERROR records into the
	// analytics event log shown on the admin dashboard.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, eventRepo))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the default super admin when the users table is empty.
	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Wire repositories and services.
	users := store.NewUserRepo(db)
	events := service.NewEventService(eventRepo, logger)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := auth.NewService(users, events, tokens, cfg.MaxLoginAttempts, cfg.LockoutDuration)
	renderer := render.New(cfg.IsDevelopment())
	sessionManager := session.New(db.DB, cfg.IsDevelopment())

	h := handler.New(handler.Deps{
		Renderer:   renderer,
		DB:         db,
		Songs:      store.NewSongRepo(db),
		Posts:      store.NewPostRepo(db),
		Shows:      store.NewShowRepo(db),
		Photos:     store.NewPhotoRepo(db),
		Contact:    store.NewContactRepo(db),
		Newsletter: store.NewNewsletterRepo(db),
		Users:      users,
		Auth:       authSvc,
		Events:     events,
		SiteURL:    cfg.SiteURL,
	})

	// Background maintenance jobs.
	sched := scheduler.New(logger)
	sched.Register("prune-analytics-events", "17 3 * * *", func(ctx context.Context) error {
		deleted, err := events.Prune(ctx, eventRetention)
		if err != nil {
			return err
		}
		if deleted > 0 {
			slog.Info("pruned analytics events", "deleted", deleted)
		}
		return nil
	})
	sched.Start()
	defer sched.Stop()

	r := newRouter(cfg, renderer, h, middleware.NewAuthenticator(authSvc, renderer), sessionManager)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
