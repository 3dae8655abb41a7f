// Package scheduler queues and processes background tasks with asynq:
// follow-up reminders at their due time and a periodic sweep that marks
// overdue follow-ups as missed.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"leadflow_backend/platform/config"
)

// Client enqueues scheduled tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// ReminderScheduler is the slice of the client the followups service
// depends on.
type ReminderScheduler interface {
	ScheduleFollowupReminder(ctx context.Context, payload FollowupReminderPayload, runAt time.Time) error
}

// NewClient creates a task client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.RedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.SchedulerQueue()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleFollowupReminder enqueues a reminder to fire at runAt.
func (c *Client) ScheduleFollowupReminder(ctx context.Context, payload FollowupReminderPayload, runAt time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewFollowupReminderTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
