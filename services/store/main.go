package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/db"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/rest"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/rest/handlers"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/config"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "store server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting store server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := db.New(log, cfg.DBAddress)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %v", err)
	}
	defer func(storage *db.DB) {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}(storage)

	if err := storage.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate db: %v", err)
	}

	svc := core.NewService(storage)
	tokens := rest.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)

	mux := http.NewServeMux()
	handlers.Register(mux, log, svc, tokens, cfg.HTTPTimeout)

	server := http.Server{
		Addr:              cfg.Address,
		ReadHeaderTimeout: cfg.HTTPTimeout,
		Handler:           mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("store http server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
