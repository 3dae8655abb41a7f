package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/activities"
	"leadflow_backend/internal/auth"
	"leadflow_backend/internal/dashboard"
	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/followups"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/http/router"
	"leadflow_backend/internal/leads"
	leadssvc "leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/pipeline"
	"leadflow_backend/internal/scheduler"
	"leadflow_backend/internal/storage"
	"leadflow_backend/internal/templates"
	"leadflow_backend/internal/users"
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
	log.Info("starting server", "env", cfg.Environment(), "addr", cfg.HTTPAddr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.Migrate(cfg.DatabaseURL())
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminders, closeReminders := initReminderScheduler(cfg, log)
	if closeReminders != nil {
		defer closeReminders()
	}

	var sender email.Sender
	if cfg.EmailEnabled() {
		sender = email.NewSMTPSender(cfg)
		log.Info("smtp sender initialized", "host", cfg.SMTPHost())
	} else {
		sender = email.NewNoopSender(log)
		log.Warn("SMTP_HOST not configured; outbound email disabled")
	}

	archiver := initArchiver(ctx, cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	usersModule := users.NewModule(pool, val, log)
	pipelineModule := pipeline.NewModule(pool, val, log)
	leadsModule := leads.NewModule(pool, pipelineModule.Repository(), archiver, eventBus, val, log)
	followupsModule := followups.NewModule(pool, leadsModule.Service(), reminders, sender, eventBus, val, log)
	activitiesModule := activities.NewModule(pool, leadsModule.Service(), val, log)
	activitiesModule.RegisterHandlers(eventBus)
	templatesModule := templates.NewModule(pool, leadsModule.Service(), sender, eventBus, val, log)
	dashboardModule := dashboard.NewModule(pool, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			usersModule,
			pipelineModule,
			leadsModule,
			followupsModule,
			activitiesModule,
			templatesModule,
			dashboardModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr())
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.RedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up reminders disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initArchiver(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) leadssvc.Archiver {
	if !cfg.StorageEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; import archiving disabled")
		return storage.NewNoopArchiver(log)
	}

	archiver, err := storage.NewMinIOArchiver(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize import archive storage", "error", err)
		return storage.NewNoopArchiver(log)
	}
	log.Info("import archive storage initialized", "bucket", cfg.MinioBucket())
	return archiver
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
