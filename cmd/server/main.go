package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mitrajit-55/password-manager/internal/config"
	"github.com/mitrajit-55/password-manager/internal/logging"
	"github.com/mitrajit-55/password-manager/internal/server"
	"github.com/mitrajit-55/password-manager/internal/storage"
	"github.com/mitrajit-55/password-manager/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if *debug {
		cfg.Debug = true
	}

	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}

	traceShutdown, err := tracing.Init(context.Background())
	if err != nil {
		log.WithError(err).Warn("failed to initialize tracing")
	}
	if traceShutdown != nil {
		defer func() {
			if err := traceShutdown(context.Background()); err != nil {
				log.WithError(err).Warn("failed to shutdown tracing")
			}
		}()
	}

	log.Infof("Starting password manager service (config: %s)", *configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("unknown storage backend")
	}
	store = storage.WithInstrumentation(store, cfg.StorageBackend)
	if err := store.Initialize(ctx); err != nil {
		// The service stays up with the failing backend; every request
		// against it reports the error instead of silently switching
		// to a different store.
		log.WithError(err).WithField("backend", cfg.StorageBackend).
			Error("storage backend initialization failed; requests will fail until it recovers")
	} else {
		log.WithField("backend", cfg.StorageBackend).Info("storage backend ready")
	}
	defer func() { _ = store.Close() }()

	// Re-apply logging when the config file changes on disk.
	config.Watch(ctx, *configPath, func(updated *config.Config) {
		if *debug {
			updated.Debug = true
		}
		if err := logging.Setup(updated); err != nil {
			log.WithError(err).Warn("failed to re-apply logging configuration")
		} else {
			log.Info("configuration reloaded")
		}
	})

	engine := server.Build(cfg, store)
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.Port), Handler: engine}

	go func() {
		log.Infof("Password API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
	}
	log.Info("Server stopped")
}
