// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the budgetscale API server.
// It loads configuration, opens the catalog source, connects to optional
// services, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"budgetscale/internal/cache"
	"budgetscale/internal/catalog"
	"budgetscale/internal/comparison"
	"budgetscale/internal/config"
	"budgetscale/internal/database"
	"budgetscale/internal/favorites"
	"budgetscale/internal/handlers"
	"budgetscale/internal/markdown"
	"budgetscale/internal/middleware"
	"budgetscale/internal/router"
	"budgetscale/internal/storage"
	"budgetscale/internal/store"
)

// scoreMemoSize bounds the impact score memo.
const scoreMemoSize = 4096

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text at debug level in development, JSON otherwise.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"catalog_source", cfg.CatalogSource,
		"valkey", cfg.ValkeyEnabled(),
	)

	// Everything started below stops when ctx is cancelled at shutdown.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	src, loader, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		slog.Error("failed to open catalog", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	defer closeCatalog()

	cur := src.Current()
	slog.Info("catalog loaded", "units", len(cur.Units()), "budget_items", len(cur.Items()))

	scorer := comparison.NewScorer(scoreMemoSize)
	src.OnReload(func(*catalog.Catalog) {
		scorer.Reset()
		markdown.Reset()
	})

	// Connect to Valkey when configured: shared response cache and
	// favorites with cross-instance notifications. Without it both stay
	// in process.
	var (
		responses handlers.ResponseCache
		backend   favorites.Backend = favorites.NewMemoryBackend()
	)
	if cfg.ValkeyEnabled() {
		var valkeyClient *redis.Client
		valkeyClient, err = cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		rc := cache.NewResponseCache(valkeyClient, cfg.CacheTTL)
		src.OnReload(func(*catalog.Catalog) {
			rc.InvalidateAll(context.Background())
		})
		// Entries from a previous deploy may describe another catalog.
		rc.InvalidateAll(ctx)
		responses = rc
		backend = favorites.NewValkeyBackend(valkeyClient, favorites.DefaultTTL)
	} else {
		slog.Warn("valkey not configured, response cache disabled and favorites kept in memory")
	}

	favStore, err := favorites.NewStore(ctx, backend)
	if err != nil {
		slog.Error("failed to start favorites store", "error", err)
		os.Exit(1)
	}

	api := handlers.NewAPI(src, scorer, favStore, responses)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	r := router.New(api, limiter, !cfg.IsDev())

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
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

	// SIGHUP reloads the catalog from its source; SIGINT or SIGTERM
	// shuts down gracefully and drains connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	var sig os.Signal
	for sig = range quit {
		if sig != syscall.SIGHUP {
			break
		}
		slog.Info("reload signal received")
		if err := src.Reload(ctx, loader); err != nil {
			slog.Error("catalog reload failed", "error", err)
		}
	}
	slog.Info("shutdown signal received", "signal", sig)

	// Stop watchers, pollers and subscriptions first.
	stop()

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openCatalog loads the initial catalog from the configured source and
// starts whatever keeps it fresh. The returned loader re-reads the source
// on demand and the returned func releases resources the source holds open.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Source, catalog.Loader, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case config.SourceEmbedded:
		loader := catalog.EmbeddedLoader()
		c, err := loader.Load(ctx)
		if err != nil {
			return nil, nil, noop, err
		}
		return catalog.NewSource(c), loader, noop, nil

	case config.SourceFile:
		loader := catalog.FileLoader(cfg.CatalogPath)
		c, err := loader.Load(ctx)
		if err != nil {
			return nil, nil, noop, err
		}
		src := catalog.NewSource(c)
		if cfg.CatalogWatch {
			if err := catalog.WatchFile(ctx, cfg.CatalogPath, src, catalog.DefaultDebounce); err != nil {
				return nil, nil, noop, fmt.Errorf("watch catalog: %w", err)
			}
			slog.Info("watching catalog file", "path", cfg.CatalogPath)
		}
		return src, loader, noop, nil

	case config.SourcePostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, noop, err
		}
		loader := store.CatalogLoader(db)
		c, err := loader.Load(ctx)
		if err != nil {
			db.Close()
			return nil, nil, noop, err
		}
		return catalog.NewSource(c), loader, func() { db.Close() }, nil

	case config.SourceS3:
		client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("init s3: %w", err)
		}
		if client == nil {
			return nil, nil, noop, fmt.Errorf("s3 catalog source needs S3 credentials")
		}
		if err := client.SeedCatalog(ctx, cfg.CatalogS3Key, catalog.EmbeddedYAML()); err != nil {
			return nil, nil, noop, err
		}
		loader := client.CatalogLoader(cfg.CatalogS3Key)
		c, err := loader.Load(ctx)
		if err != nil {
			return nil, nil, noop, err
		}
		src := catalog.NewSource(c)
		go client.PollCatalog(ctx, cfg.CatalogS3Key, src, cfg.CatalogPollInterval)
		slog.Info("polling catalog object",
			"bucket", client.Bucket(),
			"key", cfg.CatalogS3Key,
			"interval", cfg.CatalogPollInterval.String(),
		)
		return src, loader, noop, nil
	}

	return nil, nil, noop, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}

// openDatabase connects, migrates and, on an empty database, seeds the
// embedded catalog.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if _, err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	seed, err := catalog.Embedded()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := database.Seed(ctx, db, seed); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
