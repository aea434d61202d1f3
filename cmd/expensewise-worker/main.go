package main

import (
	"context"
	"errors"
	"os"
	"time"

	"expensewise/internal/cli"
	"expensewise/internal/log"
	"expensewise/internal/services"
	"expensewise/internal/worker"
)

func main() {
	env := cli.MustBootstrap(log.ComponentWorker)
	logger := env.Logger
	cfg := env.Config

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if cfg.DataBackend == "memory" {
		logger.Warn("Memory backend is private to this process; renewals and startup sync will not see API writes")
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	store, cleanup, err := env.OpenStore(ctx)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer cleanup()

	changes, err := env.NewAMQPClient(cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize change queue", "error", err)
		os.Exit(1)
	}
	defer changes.Close()

	reminders, err := env.NewAMQPClient(cfg.AMQPReminderQueue)
	if err != nil {
		logger.Error("Failed to initialize reminder queue", "error", err)
		os.Exit(1)
	}
	defer reminders.Close()

	sheet, err := env.OpenSheet(ctx, cli.DefaultCSVPath)
	if err != nil {
		logger.Error("Failed to open expense sheet", "error", err)
		os.Exit(1)
	}

	syncWorker := worker.NewSyncWorker(sheet, sheet, store)
	logger.Info("Performing startup sync")
	if err := syncWorker.StartupSync(ctx); err != nil {
		// Not fatal: the next change message retries the affected row.
		logger.Error("Startup sync failed", "error", err)
	}

	processor := services.NewRenewalProcessor(cli.ServiceDeps(store, changes), reminders,
		services.RenewalProcessorConfig{Interval: cfg.RenewalInterval})
	if err := processor.Start(ctx); err != nil {
		logger.Error("Failed to start renewal processor", "error", err)
		os.Exit(1)
	}

	reminderWorker := worker.NewReminderWorker(nil)

	consumerErr := make(chan error, 2)
	go func() {
		consumerErr <- changes.ConsumeChanges(ctx, syncWorker.HandleChange)
	}()
	go func() {
		consumerErr <- reminders.ConsumeReminders(ctx, reminderWorker.HandleReminder)
	}()
	logger.Info("Worker started", log.FieldOperation, log.OpStartup, "change_queue", cfg.AMQPQueue, "reminder_queue", cfg.AMQPReminderQueue)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
	case err := <-consumerErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := processor.Stop(shutdownCtx); err != nil {
		logger.Warn("Renewal processor did not stop cleanly", "error", err)
	}
	logger.Info("Worker shutdown complete")
}
