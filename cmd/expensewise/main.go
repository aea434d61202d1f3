package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"expensewise/internal/cli"
	apphttp "expensewise/internal/http"
	"expensewise/internal/log"
	"expensewise/internal/services"
)

func main() {
	env := cli.MustBootstrap(log.ComponentApp)
	logger := env.Logger
	cfg := env.Config

	ctx, stop := cli.SignalContext()
	defer stop()

	store, cleanup, err := env.OpenStore(ctx)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	// Change announcements are optional; without AMQP the API still works
	// and the sheet mirror can be refreshed with `ewctl sheets push`.
	publisher, err := env.NewAMQPClient(cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, continuing without change announcements", "error", err)
		publisher = nil
	}
	if publisher != nil {
		defer publisher.Close()
	}

	svc := services.New(cli.ServiceDeps(store, publisher))

	cacheSize := cfg.CacheSize
	if cacheSize == 0 {
		cacheSize = -1
	}
	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Logger:    logger,
		CacheSize: cacheSize,
		CacheTTL:  cfg.CacheTTL,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", log.FieldOperation, log.OpStartup, "addr", srv.Addr, "backend", cfg.DataBackend, "amqp_enabled", publisher != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
