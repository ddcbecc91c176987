package events

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetops/maintenance-service/internal/domain"
)

func TestDispatcherInvokesAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(EventMaintenanceCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "first:"+event.TicketID)
		return nil
	})
	dispatcher.Subscribe(EventMaintenanceCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "second:"+event.TicketID)
		return nil
	})
	dispatcher.Subscribe(EventMaintenanceVerified, func(ctx context.Context, event Event) error {
		calls = append(calls, "verified")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		Type:     EventMaintenanceCreated,
		TicketID: "ticket-1",
		Actor:    domain.Actor{ID: "user-1", Role: domain.RoleTechnician},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 handler invocations, got %d (%v)", len(calls), calls)
	}
	if calls[0] != "first:ticket-1" || calls[1] != "second:ticket-1" {
		t.Fatalf("handlers out of order: %v", calls)
	}
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(EventScheduleCreated, func(ctx context.Context, event Event) error {
		return errors.New("handler failure")
	})
	dispatcher.Subscribe(EventScheduleCreated, func(ctx context.Context, event Event) error {
		reached = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventScheduleCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Fatal("a failing handler should not stop later handlers")
	}
}

func TestDispatcherIgnoresUnrelatedEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var called bool
	dispatcher.Subscribe(EventMaintenanceAssigned, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventMaintenanceCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if called {
		t.Fatal("handler fired for an event type it never subscribed to")
	}
}
