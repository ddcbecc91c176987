package service

import (
	"fmt"
	"time"

	"github.com/fleetops/maintenance-service/internal/domain"
)

const (
	defaultMaxOccurrences = 50

	virtualNumberBase = 9000
	virtualNumberBand = 1000
)

// ExpandOptions bound virtual occurrence generation.
type ExpandOptions struct {
	// Horizon is the last date an occurrence may fall on, inclusive.
	// Zero means one year past the schedule's start date. Ignored when
	// the schedule carries its own end date.
	Horizon time.Time

	// MaxOccurrences caps the result for schedules that recur
	// indefinitely. Zero means 50.
	MaxOccurrences int
}

// ExpandSchedule projects a recurrence definition into its future
// occurrences. It is pure: no I/O, deterministic for a given schedule
// snapshot. Nothing it returns is ever persisted, numbered by the
// sequence allocator, or audited.
func ExpandSchedule(schedule domain.MaintenanceSchedule, opts ExpandOptions) []domain.VirtualOccurrence {
	max := opts.MaxOccurrences
	if max <= 0 {
		max = defaultMaxOccurrences
	}

	horizon := opts.Horizon
	if horizon.IsZero() {
		horizon = schedule.StartDate.AddDate(1, 0, 0)
	}
	if schedule.EndDate != nil {
		horizon = *schedule.EndDate
	}

	number := VirtualTicketNumber(schedule.ID)

	var occurrences []domain.VirtualOccurrence
	cursor := schedule.NextScheduledDate
	for !cursor.After(horizon) && len(occurrences) < max {
		occurrences = append(occurrences, domain.VirtualOccurrence{
			ID:                fmt.Sprintf("recurring-%s-%d", schedule.ID, cursor.UnixMilli()),
			ScheduleID:        schedule.ID,
			TicketNumber:      number,
			Title:             schedule.Template.Title,
			Description:       schedule.Template.Description,
			MaintenanceType:   schedule.MaintenanceType,
			Priority:          schedule.Template.Priority,
			AssetType:         schedule.AssetType,
			AssetID:           schedule.AssetID,
			SiteID:            schedule.SiteID,
			Status:            domain.StatusScheduled,
			ScheduledDate:     cursor,
			EstimatedDuration: schedule.Template.EstimatedDuration,
			AssignedTo:        schedule.Template.AssignedTo,
		})
		cursor = advanceCursor(cursor, schedule.Frequency, schedule.FrequencyValue)
	}
	return occurrences
}

func advanceCursor(cursor time.Time, frequency domain.ScheduleFrequency, value int) time.Time {
	if value <= 0 {
		value = 1
	}
	switch frequency {
	case domain.FrequencyDaily:
		return cursor.AddDate(0, 0, value)
	case domain.FrequencyWeekly:
		return cursor.AddDate(0, 0, 7*value)
	case domain.FrequencyMonthly:
		return cursor.AddDate(0, value, 0)
	case domain.FrequencyQuarterly:
		return cursor.AddDate(0, 3*value, 0)
	case domain.FrequencyYearly:
		return cursor.AddDate(value, 0, 0)
	default:
		return cursor.AddDate(0, 0, value)
	}
}

// VirtualTicketNumber folds a schedule id into the 9000-9999 display
// band with a polynomial rolling hash. The same schedule always labels
// its occurrences with the same number; distinct schedules may collide
// within the band, which callers accept for display purposes.
func VirtualTicketNumber(scheduleID string) int {
	var hash uint32
	for _, b := range []byte(scheduleID) {
		hash = hash*31 + uint32(b)
	}
	return virtualNumberBase + int(hash%virtualNumberBand)
}
