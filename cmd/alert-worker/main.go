package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"fatura/internal/amqp"
	"fatura/internal/config"
	"fatura/internal/core"
	"fatura/internal/services"
	"fatura/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting alert-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Alerts are published for the fatura-worker to export. Without a broker
	// the worker still runs projections, it just has nowhere to send alerts.
	var publisher services.AlertPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without alerts", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - invoice alerts will not be published")
	}

	projections := services.NewProjectionService(repo,
		core.Money{Cents: cfg.AlertAmountCents}, cfg.AlertDaysBeforeDue)
	processor := services.NewAlertProcessor(projections, publisher, cfg.MonthsAhead)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Alert processor configured",
		"interval", cfg.ProjectionInterval,
		"months_ahead", cfg.MonthsAhead,
		"alert_amount_cents", cfg.AlertAmountCents,
		"alert_days_before_due", cfg.AlertDaysBeforeDue)

	ticker := time.NewTicker(cfg.ProjectionInterval)
	defer ticker.Stop()

	logger.Info("Running initial alert cycle...")
	if count, err := processor.ProcessAlerts(ctx); err != nil {
		logger.Error("Initial alert cycle failed", "error", err)
	} else {
		logger.Info("Initial alert cycle complete", "alerts_published", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				// The cache key is day-scoped; invalidate so a long-running
				// worker always projects against fresh data.
				projections.InvalidateCache()
				count, err := processor.ProcessAlerts(ctx)
				if err != nil {
					logger.Error("Periodic alert cycle failed", "error", err)
				} else {
					logger.Info("Periodic alert cycle complete",
						"alerts_published", count,
						"next_check", now.Add(cfg.ProjectionInterval).Format("15:04:05"))
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down alert-worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(2 * time.Second):
		logger.Info("Alert-worker shutdown complete")
	}
}
