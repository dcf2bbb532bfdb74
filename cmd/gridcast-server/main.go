package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dd0wney/gridcast/pkg/api"
	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/logging"
	"github.com/dd0wney/gridcast/pkg/metrics"
	"github.com/dd0wney/gridcast/pkg/service"
	"github.com/dd0wney/gridcast/pkg/snapshot"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "HTTP server port (default 8080, or set PORT)")
	snapshotPath := flag.String("snapshot", "", "Infrastructure snapshot to load at startup")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.NewDefaultLogger().Error("failed to load config",
				logging.String("path", *configPath), logging.Error(err))
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override file config; env PORT overrides the default only
	if *port != 0 {
		cfg.Server.Port = *port
	} else if envPort := os.Getenv("PORT"); envPort != "" && *configPath == "" {
		if p, err := strconv.Atoi(envPort); err == nil {
			cfg.Server.Port = p
		}
	}
	if *snapshotPath != "" {
		cfg.Server.SnapshotPath = *snapshotPath
	}
	if *logLevel != "" {
		cfg.Server.LogLevel = *logLevel
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Server.LogLevel))
	logger.Info("gridcast starting",
		logging.Int("port", cfg.Server.Port),
		logging.String("log_level", cfg.Server.LogLevel),
	)

	registry := metrics.DefaultRegistry()

	svc, err := service.New(cfg, logger, registry)
	if err != nil {
		logger.Error("failed to create prediction service", logging.Error(err))
		os.Exit(1)
	}

	if cfg.Server.SnapshotPath != "" {
		snap, err := snapshot.Load(cfg.Server.SnapshotPath)
		if err != nil {
			logger.Error("failed to read snapshot",
				logging.String("path", cfg.Server.SnapshotPath), logging.Error(err))
			os.Exit(1)
		}
		if err := svc.LoadSnapshot(context.Background(), snap); err != nil {
			logger.Error("failed to deploy snapshot",
				logging.String("path", cfg.Server.SnapshotPath), logging.Error(err))
			os.Exit(1)
		}
	} else {
		logger.Warn("no snapshot configured, predictions unavailable until one is POSTed")
	}

	server, err := api.NewServer(svc, cfg.Server, logger, registry)
	if err != nil {
		logger.Error("failed to create API server", logging.Error(err))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("signal received, shutting down", logging.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("server exited")
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", logging.Error(err))
			os.Exit(1)
		}
	}
}
