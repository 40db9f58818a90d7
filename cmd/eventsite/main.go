// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/hackthethrone/eventsite/internal/config"
	"github.com/hackthethrone/eventsite/internal/handler"
	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/logging"
	"github.com/hackthethrone/eventsite/internal/middleware"
	"github.com/hackthethrone/eventsite/internal/model"
	"github.com/hackthethrone/eventsite/internal/registration"
	"github.com/hackthethrone/eventsite/internal/store"
	"github.com/hackthethrone/eventsite/internal/version"
)

// Registration submissions are throttled harder than reads.
const (
	registerRPS   = 2
	registerBurst = 5
	apiRPS        = 10
	apiBurst      = 20
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	doSeed := flag.Bool("seed", false, "Seed default landing page content if none is stored")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "eventsite - Event landing page and registration service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  KV_REST_API_URL         Managed KV service URL (preferred backend)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  KV_REST_API_TOKEN       Managed KV service token\n")
		_, _ = fmt.Fprintf(os.Stderr, "  REDIS_URL               Redis URL (fallback backend)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADMIN_TOKEN             Token gating admin endpoints (empty = ungated)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTSITE_SERVER_PORT   Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTSITE_ENV           Environment: development|production (default: development)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("eventsite %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(*doSeed); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(doSeed bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

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

	kvStore, err := kv.New(kv.Config{
		RESTURL:   cfg.KVRestURL,
		RESTToken: cfg.KVRestToken,
		RedisURL:  cfg.RedisURL,
		Prefix:    cfg.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() {
		if err := kvStore.Close(); err != nil {
			slog.Error("error closing storage", "error", err)
		}
	}()

	if !cfg.StorageConfigured() {
		slog.Warn("no storage backend configured, writes will fail and reads return empty")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := kvStore.Ping(ctx); err != nil {
			slog.Warn("storage ping failed", "error", err)
		} else {
			slog.Info("storage ready", "managed", cfg.UseManagedKV())
		}
		cancel()
	}

	// Upgrade logger to also mirror WARN and ERROR logs into storage
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, kvStore))
	slog.SetDefault(logger)

	contentRepo := store.NewContentRepo(kvStore)
	registrationRepo := store.NewRegistrationRepo(kvStore)
	registrationSvc := registration.NewService(registrationRepo)

	if doSeed {
		if err := seedContent(contentRepo); err != nil {
			return fmt.Errorf("seeding content: %w", err)
		}
	}

	contentHandler := handler.NewContentHandler(contentRepo)
	registerHandler := handler.NewRegisterHandler(registrationSvc)
	registrationsHandler := handler.NewRegistrationsHandler(registrationRepo, cfg.ListMax)
	healthHandler := handler.NewHealthHandler(kvStore)

	adminAuth := middleware.AdminAuth(cfg.AdminToken)
	if !cfg.AdminGated() {
		slog.Warn("ADMIN_TOKEN not set, admin endpoints are ungated")
	}

	apiLimiter := middleware.NewGlobalRateLimiter(apiRPS, apiBurst)
	registerLimiter := middleware.NewGlobalRateLimiter(registerRPS, registerBurst)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())

		r.Get("/content", contentHandler.Get)

		r.With(registerLimiter.Middleware()).Post("/register", registerHandler.Register)

		// Admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(adminAuth)
			r.Post("/content", contentHandler.Update)
			r.Get("/registrations", registrationsHandler.List)
			r.Delete("/registrations", registrationsHandler.Delete)
			r.Get("/registrations/export", registrationsHandler.Export)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// seedContent stores the default content document unless one already
// exists. Seeding never overwrites operator-edited content.
func seedContent(repo *store.ContentRepo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := repo.Read(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		slog.Info("content already stored, skipping seed")
		return nil
	}

	if err := repo.Write(ctx, model.DefaultContent()); err != nil {
		return err
	}
	slog.Info("default content seeded")
	return nil
}
