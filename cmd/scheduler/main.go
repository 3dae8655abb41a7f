package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/followups"
	"leadflow_backend/internal/leads"
	"leadflow_backend/internal/pipeline"
	"leadflow_backend/internal/scheduler"
	"leadflow_backend/internal/storage"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/db"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Environment())
	log.Info("starting scheduler", "env", cfg.Environment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	var sender email.Sender
	if cfg.EmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		sender = email.NewNoopSender(log)
		log.Warn("SMTP_HOST not configured; reminder emails will only be logged")
	}

	val := validator.New()

	// Worker-side wiring: the reminder jobs live in the follow-ups
	// service, which needs the leads module for access checks.
	pipelineModule := pipeline.NewModule(pool, val, log)
	leadsModule := leads.NewModule(pool, pipelineModule.Repository(), storage.NewNoopArchiver(log), eventBus, val, log)
	followupsModule := followups.NewModule(pool, leadsModule.Service(), nil, sender, eventBus, val, log)

	worker, err := scheduler.NewWorker(cfg, followupsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	}()

	if err := worker.Run(); err != nil {
		log.Error("worker stopped", "error", err)
		panic("worker stopped: " + err.Error())
	}
	eventBus.Wait()
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
