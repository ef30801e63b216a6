package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/server"
	"github.com/osa911/portfolio-api/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger configuration
	logConfig := &logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	// Configure and get logger
	if err := logging.InitLogger(logConfig); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()
	logger.EnableRequestLogging(cfg.LogRequests)

	logger.Info("Starting portfolio API %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	srv := server.NewServer(cfg, deps)
	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server: %v", err)
		cleanup()
		os.Exit(1)
	}
}
