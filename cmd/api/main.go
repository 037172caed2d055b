// Package main is the entry point for the RainCast API server.
//
// It loads configuration, initializes the structured logger, wires the
// prediction pipeline (weather source, artifact cache, prediction service),
// builds the HTTP server with the core chassis, and starts listening.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"raincast/internal/api/handlers"
	"raincast/internal/artifacts"
	"raincast/internal/config"
	"raincast/internal/core"
	"raincast/internal/prediction"
	"raincast/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("raincast API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
		"models_dir", cfg.Models.Dir,
	)

	// Wire the prediction pipeline.
	weatherSource, err := weather.NewOpenMeteoClient(cfg.Weather, logger)
	if err != nil {
		return fmt.Errorf("creating weather client: %w", err)
	}

	artifactCache := artifacts.NewCache(cfg.Models.Dir, logger)
	predictionService := prediction.NewService(weatherSource, artifactCache, logger)

	// Build the server.
	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	srv.HealthProbes = []core.HealthProbe{
		artifacts.NewHealthProbe(artifactCache),
	}

	predictionHandler := handlers.NewPredictionHandler(predictionService, logger)
	srv.RouteRegistrars = append(srv.RouteRegistrars, func(r chi.Router) {
		predictionHandler.RegisterRoutes(r)
	})

	srv.MountRoutes()

	addr := net.JoinHostPort("", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for shutdown signal or server error.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
