package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iwvelando/benefit-calculator/internal/calculator"
	"github.com/iwvelando/benefit-calculator/internal/history"
	"github.com/iwvelando/benefit-calculator/internal/logging"
	"github.com/iwvelando/benefit-calculator/internal/metrics"
	"github.com/iwvelando/benefit-calculator/internal/server"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/iwvelando/benefit-calculator/pkg/format"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	envFile := flag.String("env-file", ".env", "optional file with environment overrides")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	formatter, err := format.NewFormatter(cfg.Output.Currency, cfg.Output.Locale)
	if err != nil {
		logger.Fatal("failed to initialize currency formatter", zap.String("op", "main"), zap.Error(err))
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		logger.Fatal("failed to open history store", zap.String("op", "main"), zap.Error(err))
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	var healthCheck func(ctx context.Context) error
	if p, ok := store.(pinger); ok {
		healthCheck = p.Ping
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	service := calculator.NewService(logger, history.New(store, logger), m)

	handler := server.NewHandler(logger, server.Options{
		Service:        service,
		Formatter:      formatter,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		MaxUploadSize:  cfg.UploadSizeBytes(),
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
		HealthCheck:    healthCheck,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("benefit calculator API listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("historyBackend", cfg.History.Backend),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.String("op", "main"), zap.Error(err))
		return
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("op", "main"), zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", zap.String("op", "main"), zap.Error(err))
	}
	logger.Info("server exited", zap.String("op", "main"))
}
