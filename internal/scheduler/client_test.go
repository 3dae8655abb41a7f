package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestScheduleFollowupReminder(t *testing.T) {
	mr := miniredis.RunT(t)

	c := &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()}),
		queue:  "default",
	}
	defer c.Close()

	payload := FollowupReminderPayload{FollowupID: "0d9f2f0a-7c1e-4f2b-b7c1-3f9a1c2d4e5f"}
	runAt := time.Now().Add(2 * time.Hour)
	if err := c.ScheduleFollowupReminder(context.Background(), payload, runAt); err != nil {
		t.Fatalf("schedule reminder: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListScheduledTasks("default")
	if err != nil {
		t.Fatalf("list scheduled tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 scheduled task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskFollowupReminder {
		t.Fatalf("expected task type %q, got %q", TaskFollowupReminder, tasks[0].Type)
	}

	parsed, err := ParseFollowupReminderPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if parsed.FollowupID != payload.FollowupID {
		t.Fatalf("payload round trip mismatch: %q", parsed.FollowupID)
	}
}

func TestRedisClientOptParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6380/2")
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	if opt.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opt.Addr)
	}
	if opt.Password != "secret" {
		t.Fatalf("unexpected password %q", opt.Password)
	}
	if opt.DB != 2 {
		t.Fatalf("unexpected db %d", opt.DB)
	}
}
