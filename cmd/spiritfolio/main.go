// Package main is the entry point for the portfolio server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spiritfolio/internal/cache"
	"spiritfolio/internal/config"
	"spiritfolio/internal/database"
	"spiritfolio/internal/handlers"
	"spiritfolio/internal/render"
	"spiritfolio/internal/router"
	"spiritfolio/internal/session"
	"spiritfolio/internal/site"
	"spiritfolio/internal/storage"
	"spiritfolio/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize the HTML template renderer for admin pages.
	// In dev mode, templates load assets from CDN; in production they use
	// compiled local files embedded in the binary.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize the public site renderer.
	siteRenderer, err := site.New(cfg.SiteName)
	if err != nil {
		slog.Error("failed to initialize site renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	pageStore := store.NewPageStore(db)
	sectionStore := store.NewSectionStore(db)
	projectStore := store.NewProjectStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional — app works without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"public_bucket", cfg.S3BucketPublic,
				"private_bucket", cfg.S3BucketPrivate,
			)
		}
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Initialize the full-page cache (rendered HTML in Valkey).
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, sessionStore, pageStore, sectionStore, projectStore, userStore, mediaStore, storageClient, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore, cfg.SiteName)
	publicHandlers := handlers.NewPublic(siteRenderer, pageStore, sectionStore, projectStore, pageCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate media uploads to object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
