// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the catalog API server. It loads
// configuration, connects to PostgreSQL and Valkey, wires the catalog and
// starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogpress/internal/cache"
	"catalogpress/internal/catalog"
	"catalogpress/internal/config"
	"catalogpress/internal/database"
	"catalogpress/internal/handlers"
	"catalogpress/internal/router"
	"catalogpress/internal/store"
)

func main() {
	// Load configuration first so the logger honours LOG_LEVEL.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	handlerOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"page_size", cfg.PageSize,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if pages already exist).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// The listing cache is optional; without Valkey every request resolves.
	var listings handlers.ListingCache
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, listing cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		listings = cache.NewListingCache(valkeyClient, cfg.CacheTTL)
	}

	pageStore := store.NewPageStore(db)
	productStore := store.NewProductStore(db)
	assignmentStore := store.NewAssignmentStore(db)

	cat := catalog.New(pageStore, productStore, assignmentStore)

	publicHandlers := handlers.NewPublic(cat, pageStore, listings, cfg.PageSize)
	adminHandlers := handlers.NewAdmin(cat, productStore, assignmentStore, pageStore, listings)

	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set, admin routes are open")
	}
	r := router.New(publicHandlers, adminHandlers, router.Options{
		AdminToken:     cfg.AdminToken,
		AdminRateLimit: cfg.AdminRateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
