package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sanaalens/internal/cache"
	"sanaalens/internal/config"
	"sanaalens/internal/database"
	"sanaalens/internal/middleware"
	"sanaalens/internal/observability"
	"sanaalens/internal/server"
)

func main() {
	// Optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	rdb, err := cache.InitRedis(cfg.RedisURL)
	if err != nil {
		middleware.Logger.Error("invalid redis configuration", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "sanaalens",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
	if err != nil {
		middleware.Logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			middleware.Logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	srv := server.New(cfg, db, rdb)

	go func() {
		middleware.Logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := srv.Listen(ctx, ":"+cfg.Port); err != nil {
			middleware.Logger.Error("server stopped", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	middleware.Logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		middleware.Logger.Error("graceful shutdown failed", "error", err)
	}
}
