package service

import (
	"context"
	"testing"

	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/repository"
)

func TestAuditRecorderOrdering(t *testing.T) {
	store := newMockStore()
	recorder := NewAuditRecorder(store)
	ctx := context.Background()

	for _, description := range []string{"first", "second", "third"} {
		id, err := recorder.Record(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: "ticket-1",
			EventType:           domain.AuditStatusChanged,
			Description:         description,
			PerformedBy:         "user-tech",
		})
		if err != nil {
			t.Fatalf("record %q: %v", description, err)
		}
		if id == "" {
			t.Fatalf("record %q: empty id", description)
		}
	}

	oldest, err := recorder.ListFor(ctx, "ticket-1", repository.OrderOldestFirst)
	if err != nil {
		t.Fatalf("list oldest first: %v", err)
	}
	if len(oldest) != 3 || oldest[0].Description != "first" || oldest[2].Description != "third" {
		t.Fatalf("oldest-first order wrong: %+v", oldest)
	}

	newest, err := recorder.ListFor(ctx, "ticket-1", repository.OrderNewestFirst)
	if err != nil {
		t.Fatalf("list newest first: %v", err)
	}
	if len(newest) != 3 || newest[0].Description != "third" || newest[2].Description != "first" {
		t.Fatalf("newest-first order wrong: %+v", newest)
	}
}
