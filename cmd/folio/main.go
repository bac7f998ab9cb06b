// Package main is the entry point for the folio server. It loads
// configuration, connects to backing services, sets up routing, and
// starts the HTTP server with graceful shutdown support.
//
// Backends are optional at startup: without Postgres the public site
// still serves, just with empty sections, and without Valkey nobody
// can sign in. Both states are logged loudly.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/render"
	"folio/internal/router"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL. A missing or unreachable store is not
	// fatal: stores degrade to empty reads and failing writes.
	var db *sql.DB
	if !cfg.StoreConfigured() {
		slog.Warn("content store not configured, serving with empty content")
	} else {
		db, err = database.Connect(cfg.DSN())
		if err != nil {
			slog.Warn("content store unreachable, serving with empty content", "error", err)
			db = nil
		} else {
			defer db.Close()
			if err := database.Migrate(db); err != nil {
				slog.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
			if err := database.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				slog.Error("failed to seed admin user", "error", err)
				os.Exit(1)
			}
		}
	}

	// Connect to Valkey. Without it sessions cannot be created, so the
	// admin panel is effectively disabled.
	var valkeyClient *redis.Client
	valkeyClient, err = session.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unreachable, sign-in disabled", "error", err)
		valkeyClient = nil
	} else {
		defer valkeyClient.Close()
	}

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores. A nil db handle is fine; reads come back empty.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	projectStore := store.NewProjectStore(db)
	experienceStore := store.NewExperienceStore(db)
	mediaStore := store.NewMediaStore(db)

	// S3-compatible object storage (optional).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Contact form relay.
	contactClient := contact.NewClient(cfg.Web3FormsKey)
	if !contactClient.Configured() {
		slog.Warn("web3forms not configured, contact form disabled")
	}

	// Auth: one process-wide notifier feeds auth state changes to any
	// interested component.
	notifier := auth.NewNotifier()
	notifier.Subscribe(func(p *auth.Principal) {
		if p != nil {
			slog.Info("auth state changed", "signed_in", p.Email)
		} else {
			slog.Info("auth state changed", "signed_in", nil)
		}
	})
	authService := auth.NewService(userStore, sessionStore, cfg.AdminEmail, notifier)
	if cfg.AdminEmail == "" {
		slog.Warn("admin email not configured, admin panel locked")
	}

	publicHandlers := handlers.NewPublic(renderer, postStore, projectStore, experienceStore, contactClient)
	authHandlers := handlers.NewAuth(renderer, authService)
	adminHandlers := handlers.NewAdmin(renderer, postStore, projectStore, experienceStore, mediaStore, storageClient)

	r := router.New(router.Deps{
		Sessions:    sessionStore,
		AuthService: authService,
		Public:      publicHandlers,
		Auth:        authHandlers,
		Admin:       adminHandlers,
		SecureCSRF:  secureCookies,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
