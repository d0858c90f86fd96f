// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pillai-nz/go-pillai/internal/config"
	"github.com/pillai-nz/go-pillai/internal/repository"
	"github.com/pillai-nz/go-pillai/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := services.NewLoggerWithOptions(services.LogOptions{
		Service:     "pillai",
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		File:        cfg.LogFile,
		MaxSizeMB:   50,
		MaxBackups:  5,
		MaxAgeDays:  28,
	})
	defer func() {
		if err := services.CloseLogFile(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}()

	db, err := repository.OpenDatabase(cfg.DatabasePath)
	if err != nil {
		logger.Error("Database setup failed", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repository.CloseDatabase(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	app, err := InitializeApplication(cfg, logger, db)
	if err != nil {
		logger.Error("Application setup failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Retention.Run(ctx)

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		// an ask may wait on the answer source for the full request timeout
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("Pill-AI server starting",
		"port", cfg.ServerPort,
		"environment", cfg.Environment,
		"answer_mode", cfg.AnswerMode,
		"translation_provider", cfg.TranslationProvider)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server gracefully")
	case err := <-serverErr:
		logger.Error("Server startup failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
		return
	}
	logger.Info("Server stopped gracefully")
}
