package service

import (
	"reflect"
	"testing"
	"time"

	"github.com/fleetops/maintenance-service/internal/domain"
)

func dateUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func monthlySchedule() domain.MaintenanceSchedule {
	start := dateUTC(2024, time.January, 1)
	return domain.MaintenanceSchedule{
		ID:                "schedule-hash-rack-7",
		AssetType:         domain.AssetASIC,
		AssetID:           "asic-0042",
		SiteID:            "site-nv-1",
		MaintenanceType:   domain.TypePreventive,
		Frequency:         domain.FrequencyMonthly,
		FrequencyValue:    1,
		StartDate:         start,
		NextScheduledDate: start,
		Template: domain.TicketTemplate{
			Title:    "Monthly dust cleanout",
			Priority: domain.PriorityMedium,
		},
		IsActive: true,
	}
}

func TestExpandScheduleIsDeterministic(t *testing.T) {
	schedule := monthlySchedule()

	first := ExpandSchedule(schedule, ExpandOptions{})
	second := ExpandSchedule(schedule, ExpandOptions{})

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output for identical schedule snapshots")
	}
}

func TestExpandScheduleMonthlyOneYearDefault(t *testing.T) {
	occurrences := ExpandSchedule(monthlySchedule(), ExpandOptions{})

	if len(occurrences) != 13 {
		t.Fatalf("expected 13 monthly occurrences over one year inclusive, got %d", len(occurrences))
	}
	if got := occurrences[0].ScheduledDate; !got.Equal(dateUTC(2024, time.January, 1)) {
		t.Fatalf("first occurrence: got %v", got)
	}
	if got := occurrences[12].ScheduledDate; !got.Equal(dateUTC(2025, time.January, 1)) {
		t.Fatalf("13th occurrence should land exactly one year out, got %v", got)
	}
}

func TestExpandScheduleEndDateIsInclusive(t *testing.T) {
	schedule := monthlySchedule()
	schedule.Frequency = domain.FrequencyWeekly
	schedule.NextScheduledDate = dateUTC(2024, time.March, 1)
	end := dateUTC(2024, time.March, 22)
	schedule.EndDate = &end

	occurrences := ExpandSchedule(schedule, ExpandOptions{})

	// Mar 1, 8, 15, 22: the occurrence on the end date itself counts.
	if len(occurrences) != 4 {
		t.Fatalf("expected 4 weekly occurrences, got %d", len(occurrences))
	}
	if got := occurrences[3].ScheduledDate; !got.Equal(end) {
		t.Fatalf("last occurrence should fall on the end date, got %v", got)
	}
}

func TestExpandScheduleCapsOpenEndedSchedules(t *testing.T) {
	schedule := monthlySchedule()
	schedule.Frequency = domain.FrequencyDaily

	occurrences := ExpandSchedule(schedule, ExpandOptions{})

	if len(occurrences) != defaultMaxOccurrences {
		t.Fatalf("expected cap of %d, got %d", defaultMaxOccurrences, len(occurrences))
	}

	capped := ExpandSchedule(schedule, ExpandOptions{MaxOccurrences: 5})
	if len(capped) != 5 {
		t.Fatalf("expected explicit cap of 5, got %d", len(capped))
	}
}

func TestExpandScheduleFrequencyValueScalesStep(t *testing.T) {
	schedule := monthlySchedule()
	schedule.Frequency = domain.FrequencyDaily
	schedule.FrequencyValue = 14

	occurrences := ExpandSchedule(schedule, ExpandOptions{MaxOccurrences: 3})

	want := []time.Time{
		dateUTC(2024, time.January, 1),
		dateUTC(2024, time.January, 15),
		dateUTC(2024, time.January, 29),
	}
	for i, expected := range want {
		if !occurrences[i].ScheduledDate.Equal(expected) {
			t.Fatalf("occurrence %d: got %v, want %v", i, occurrences[i].ScheduledDate, expected)
		}
	}
}

func TestExpandScheduleQuarterlyStep(t *testing.T) {
	schedule := monthlySchedule()
	schedule.Frequency = domain.FrequencyQuarterly

	occurrences := ExpandSchedule(schedule, ExpandOptions{})

	if len(occurrences) != 5 {
		t.Fatalf("expected 5 quarterly occurrences over one year inclusive, got %d", len(occurrences))
	}
	if got := occurrences[1].ScheduledDate; !got.Equal(dateUTC(2024, time.April, 1)) {
		t.Fatalf("second quarterly occurrence: got %v", got)
	}
}

func TestExpandScheduleOccurrenceShape(t *testing.T) {
	schedule := monthlySchedule()
	occurrences := ExpandSchedule(schedule, ExpandOptions{MaxOccurrences: 1})

	if len(occurrences) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occurrences))
	}
	occ := occurrences[0]
	if occ.Status != domain.StatusScheduled {
		t.Fatalf("virtual occurrences are always scheduled, got %s", occ.Status)
	}
	if occ.Title != schedule.Template.Title {
		t.Fatalf("title should come from the template, got %q", occ.Title)
	}
	if occ.ScheduleID != schedule.ID {
		t.Fatalf("schedule provenance lost: %q", occ.ScheduleID)
	}
	wantID := "recurring-schedule-hash-rack-7-" + "1704067200000"
	if occ.ID != wantID {
		t.Fatalf("synthesized id: got %q, want %q", occ.ID, wantID)
	}
	if occ.TicketNumber != VirtualTicketNumber(schedule.ID) {
		t.Fatalf("occurrence number should be the schedule hash, got %d", occ.TicketNumber)
	}
}

func TestVirtualTicketNumberBandAndStability(t *testing.T) {
	ids := []string{"schedule-1", "schedule-2", "a", "", "schedule-hash-rack-7"}
	for _, id := range ids {
		number := VirtualTicketNumber(id)
		if number < 9000 || number > 9999 {
			t.Fatalf("number for %q outside display band: %d", id, number)
		}
		if again := VirtualTicketNumber(id); again != number {
			t.Fatalf("number for %q not stable: %d then %d", id, number, again)
		}
	}
}
