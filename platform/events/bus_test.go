package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"leadflow_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var calls atomic.Int32
	handler := HandlerFunc(func(context.Context, Event) error {
		calls.Add(1)
		return nil
	})
	bus.Subscribe("ping", handler)
	bus.Subscribe("ping", handler)
	bus.Subscribe("other", handler)

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "ping"})
	bus.Wait()

	if got := calls.Load(); got != 2 {
		t.Fatalf("handler calls = %d, want 2", got)
	}
}

func TestPublishSyncStopsAtFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var order []string
	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error {
		order = append(order, "first")
		return errors.New("boom")
	}))
	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "ping"})
	if err == nil {
		t.Fatal("PublishSync() expected error, got nil")
	}
	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("handler order = %v, want [first]", order)
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "unheard"})
	bus.Wait()

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "unheard"}); err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}
}

func TestAsyncHandlerErrorDoesNotReachPublisher(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	bus.Subscribe("ping", HandlerFunc(func(context.Context, Event) error {
		return errors.New("handler failed")
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "ping"})
	bus.Wait()
}
