// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the forgesite API server.
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

	"forgesite/internal/cache"
	"forgesite/internal/config"
	"forgesite/internal/database"
	"forgesite/internal/handlers"
	"forgesite/internal/mailer"
	"forgesite/internal/pricing"
	"forgesite/internal/recaptcha"
	"forgesite/internal/router"
	"forgesite/internal/service"
	"forgesite/internal/session"
	"forgesite/internal/storage"
	"forgesite/internal/store"
	"forgesite/internal/validation"
)

func main() {
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

	// Connect to Valkey (sessions + article response cache). The API keeps
	// working without it: article caching is skipped, but the beta gate
	// needs sessions, so a dead Valkey is fatal outside development.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		if !cfg.IsDev() {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		slog.Warn("valkey unavailable, beta sessions disabled and caching off", "error", err)
		valkeyClient = nil
	}
	if valkeyClient != nil {
		defer valkeyClient.Close()
	}

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultArticleTTL)

	// Seeding may have changed articles; drop any cached responses left
	// over from a previous run.
	if cfg.IsDev() {
		responseCache.InvalidateAll(context.Background())
	}

	// Initialize data stores.
	submissionStore := store.NewSubmissionStore(db)
	articleStore := store.NewArticleStore(db)
	userStore := store.NewUserStore(db)

	// Select logo storage by driver.
	var files storage.Storage
	switch cfg.StorageDriver {
	case "s3":
		files, err = storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	default:
		files = storage.NewLocal(cfg.UploadDir)
		slog.Info("local storage configured", "dir", cfg.UploadDir)
	}

	// Outbound mail.
	sender := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFromAddr)
	mail, err := mailer.New(sender, mailer.Addresses{
		Info:   cfg.MailInfoAddr,
		Quotes: cfg.MailQuotesAddr,
	})
	if err != nil {
		slog.Error("failed to initialize mailer", "error", err)
		os.Exit(1)
	}

	// reCAPTCHA verification. Skipped entirely when the testing flag is set
	// (Load refuses that flag in production).
	captcha := recaptcha.New(cfg.RecaptchaSecret, cfg.RecaptchaSkipInTesting, logger)

	validator := validation.New(validation.Options{
		MinTotal:      cfg.QuoteMinTotal,
		MaxTotal:      cfg.QuoteMaxTotal,
		CheckEmailDNS: !cfg.IsDev(),
	})

	submissionService := service.NewSubmissionService(
		db, submissionStore, mail, files, pricing.Default(), logger)

	// Handler groups.
	contactHandlers := handlers.NewContactHandler(submissionService, captcha, validator)
	quoteHandlers := handlers.NewQuoteHandler(submissionService, validator)
	articleHandlers := handlers.NewArticlesHandler(articleStore, responseCache)
	betaHandlers := handlers.NewBetaHandler(userStore, sessionStore)

	limiters := router.NewLimiters()
	defer limiters.Stop()

	r := router.New(limiters, contactHandlers, quoteHandlers, articleHandlers, betaHandlers)

	// WriteTimeout accommodates the outbound reCAPTCHA and SMTP calls made
	// during form submission.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
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
