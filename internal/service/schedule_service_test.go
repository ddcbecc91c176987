package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/events"
	apperrors "github.com/fleetops/maintenance-service/pkg/util"
)

func newScheduleService(t *testing.T) (*ScheduleService, *mockStore) {
	t.Helper()
	store := newMockStore()
	return NewScheduleService(store, events.NewInMemoryDispatcher(), zap.NewNop(), 0), store
}

func validScheduleInput() ScheduleCreateInput {
	return ScheduleCreateInput{
		AssetType:       domain.AssetContainer,
		AssetID:         "container-c2",
		SiteID:          "site-nv-1",
		MaintenanceType: domain.TypePreventive,
		Frequency:       domain.FrequencyWeekly,
		FrequencyValue:  1,
		StartDate:       dateUTC(2026, time.September, 7),
		Template: domain.TicketTemplate{
			Title: "Weekly filter inspection",
		},
	}
}

func TestCreateScheduleStartsCursorAtStartDate(t *testing.T) {
	svc, _ := newScheduleService(t)

	schedule, err := svc.Create(context.Background(), testAdmin, validScheduleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !schedule.NextScheduledDate.Equal(schedule.StartDate) {
		t.Fatalf("cursor should start at the start date, got %v", schedule.NextScheduledDate)
	}
	if !schedule.IsActive {
		t.Fatal("new schedules should be active")
	}
	if schedule.Template.Priority != domain.PriorityMedium {
		t.Fatalf("template priority should default to medium, got %s", schedule.Template.Priority)
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	svc, _ := newScheduleService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ScheduleCreateInput)
	}{
		{"missing asset", func(in *ScheduleCreateInput) { in.AssetID = "" }},
		{"corrective type", func(in *ScheduleCreateInput) { in.MaintenanceType = domain.TypeCorrective }},
		{"unknown frequency", func(in *ScheduleCreateInput) { in.Frequency = "fortnightly" }},
		{"zero frequency value", func(in *ScheduleCreateInput) { in.FrequencyValue = 0 }},
		{"missing start date", func(in *ScheduleCreateInput) { in.StartDate = time.Time{} }},
		{"end before start", func(in *ScheduleCreateInput) {
			end := in.StartDate.AddDate(0, 0, -1)
			in.EndDate = &end
		}},
		{"missing template title", func(in *ScheduleCreateInput) { in.Template.Title = "" }},
	}
	for _, tc := range cases {
		input := validScheduleInput()
		tc.mutate(&input)
		if _, err := svc.Create(ctx, testAdmin, input); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestDeactivateKeepsScheduleRow(t *testing.T) {
	svc, store := newScheduleService(t)
	ctx := context.Background()

	schedule, err := svc.Create(ctx, testAdmin, validScheduleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(ctx, schedule.ID, testAdmin); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	kept, err := svc.Get(ctx, schedule.ID)
	if err != nil {
		t.Fatalf("deactivated schedule should still be readable: %v", err)
	}
	if kept.IsActive {
		t.Fatal("schedule should be inactive")
	}

	active, err := store.Schedules().ListActive(ctx, nil)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated schedule still listed: %d", len(active))
	}
}

func TestAdvanceCursorRejectsDatesBeforeStart(t *testing.T) {
	svc, _ := newScheduleService(t)
	ctx := context.Background()

	schedule, err := svc.Create(ctx, testAdmin, validScheduleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.AdvanceCursor(ctx, schedule.ID, schedule.StartDate.AddDate(0, 0, -7)); err == nil {
		t.Fatal("expected validation error for cursor before start date")
	}

	next := schedule.StartDate.AddDate(0, 0, 7)
	if err := svc.AdvanceCursor(ctx, schedule.ID, next); err != nil {
		t.Fatalf("advance: %v", err)
	}
	moved, err := svc.Get(ctx, schedule.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !moved.NextScheduledDate.Equal(next) {
		t.Fatalf("cursor not advanced: %v", moved.NextScheduledDate)
	}

	if err := svc.AdvanceCursor(ctx, "schedule-missing", next); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCalendarMergesPersistedAndVirtualEntries(t *testing.T) {
	svc, store := newScheduleService(t)
	ctx := context.Background()

	scheduled := dateUTC(2026, time.September, 9)
	persisted := &domain.MaintenanceTicket{
		TicketNumber:  5001,
		Title:         "PSU swap",
		AssetType:     domain.AssetASIC,
		AssetID:       "asic-0042",
		SiteID:        "site-nv-1",
		Status:        domain.StatusScheduled,
		ScheduledDate: &scheduled,
	}
	if err := store.Tickets().Create(ctx, persisted); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	schedule, err := svc.Create(ctx, testAdmin, validScheduleInput())
	if err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	from := dateUTC(2026, time.September, 1)
	to := dateUTC(2026, time.September, 30)
	entries, err := svc.Calendar(ctx, "site-nv-1", from, to)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}

	// One persisted ticket plus weekly occurrences on Sep 7, 14, 21, 28.
	if len(entries) != 5 {
		t.Fatalf("expected 5 calendar entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].EntryDate().Before(entries[i-1].EntryDate()) {
			t.Fatalf("entries out of order at %d", i)
		}
	}

	var persistedCount, virtualCount int
	for _, entry := range entries {
		switch e := entry.(type) {
		case domain.PersistedEntry:
			persistedCount++
			if e.Ticket.TicketNumber != 5001 {
				t.Fatalf("unexpected persisted ticket %d", e.Ticket.TicketNumber)
			}
		case domain.VirtualEntry:
			virtualCount++
			if e.Occurrence.TicketNumber != VirtualTicketNumber(schedule.ID) {
				t.Fatalf("virtual number mismatch: %d", e.Occurrence.TicketNumber)
			}
			if e.Occurrence.ScheduledDate.Before(from) || e.Occurrence.ScheduledDate.After(to) {
				t.Fatalf("virtual occurrence outside window: %v", e.Occurrence.ScheduledDate)
			}
		default:
			t.Fatalf("unknown calendar entry %T", entry)
		}
	}
	if persistedCount != 1 || virtualCount != 4 {
		t.Fatalf("expected 1 persisted and 4 virtual, got %d and %d", persistedCount, virtualCount)
	}
}

func TestCalendarScopesBySite(t *testing.T) {
	svc, _ := newScheduleService(t)
	ctx := context.Background()

	input := validScheduleInput()
	input.SiteID = "site-tx-9"
	if _, err := svc.Create(ctx, testAdmin, input); err != nil {
		t.Fatalf("create: %v", err)
	}

	entries, err := svc.Calendar(ctx, "site-nv-1",
		dateUTC(2026, time.September, 1), dateUTC(2026, time.September, 30))
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("other site's schedule leaked into calendar: %d entries", len(entries))
	}
}
