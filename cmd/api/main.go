// Package main is the entrypoint for the Notes API server.
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/notesapi/notesapi/internal/app"
	"github.com/notesapi/notesapi/internal/config"
	"github.com/notesapi/notesapi/internal/logging"
	"github.com/notesapi/notesapi/internal/server"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Open backends and wire the router
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application",
			zap.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL)),
			zap.String("note_store", cfg.NoteStore),
			zap.String("database_url", redactURL(cfg.DatabaseURL)),
			zap.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}

	// Create and run server
	srv := server.New(
		application.Router(),
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	application.RegisterShutdown(srv)

	logger.Info("starting server",
		zap.Int("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
		zap.String("note_store", cfg.NoteStore),
		zap.String("secret_backend", cfg.SecretBackend),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
