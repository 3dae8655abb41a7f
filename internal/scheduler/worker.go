package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// FollowupJobs is the domain surface the worker drives.
type FollowupJobs interface {
	// ProcessReminder notifies the rep if the follow-up is still pending.
	ProcessReminder(ctx context.Context, followupID uuid.UUID) error
	// SweepOverdue marks overdue pending follow-ups as missed and
	// returns how many were affected.
	SweepOverdue(ctx context.Context) (int, error)
}

// Worker consumes scheduled tasks and runs the periodic overdue sweep.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	jobs      FollowupJobs
	log       *logger.Logger
}

// NewWorker builds the asynq server and periodic scheduler.
func NewWorker(cfg config.SchedulerConfig, jobs FollowupJobs, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.RedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.SchedulerQueue()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{queue: 1},
	})

	scheduler := asynq.NewScheduler(opt, nil)

	return &Worker{server: server, scheduler: scheduler, jobs: jobs, log: log}, nil
}

// Run blocks processing tasks until the server is shut down.
func (w *Worker) Run() error {
	if _, err := w.scheduler.Register("@every 10m", NewOverdueSweepTask()); err != nil {
		return fmt.Errorf("register overdue sweep: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start periodic scheduler: %w", err)
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskFollowupReminder, w.handleReminder)
	mux.HandleFunc(TaskOverdueSweep, w.handleSweep)

	return w.server.Run(mux)
}

// Shutdown stops the server and scheduler gracefully.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *Worker) handleReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowupReminderPayload(task)
	if err != nil {
		return fmt.Errorf("parse reminder payload: %w", err)
	}

	id, err := uuid.Parse(payload.FollowupID)
	if err != nil {
		return fmt.Errorf("parse followup id: %w", err)
	}

	w.log.TaskEvent(TaskFollowupReminder, payload.FollowupID)
	return w.jobs.ProcessReminder(ctx, id)
}

func (w *Worker) handleSweep(ctx context.Context, _ *asynq.Task) error {
	count, err := w.jobs.SweepOverdue(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		w.log.TaskEvent(TaskOverdueSweep, "", "missed", count)
	}
	return nil
}
