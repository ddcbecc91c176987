package domain

import "time"

// ScheduleFrequency enumerates supported recurrence steps.
type ScheduleFrequency string

const (
	FrequencyDaily     ScheduleFrequency = "daily"
	FrequencyWeekly    ScheduleFrequency = "weekly"
	FrequencyMonthly   ScheduleFrequency = "monthly"
	FrequencyQuarterly ScheduleFrequency = "quarterly"
	FrequencyYearly    ScheduleFrequency = "yearly"
)

// TicketTemplate carries the fields copied onto every occurrence a
// schedule produces.
type TicketTemplate struct {
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Priority          MaintenancePriority `json:"priority"`
	EstimatedDuration *float64            `json:"estimated_duration,omitempty"`
	AssignedTo        []string            `json:"assigned_to,omitempty"`
}

// MaintenanceSchedule is a recurrence definition, not a ticket. Future
// occurrences are computed on demand and only become real tickets when
// an external materialization job advances NextScheduledDate.
type MaintenanceSchedule struct {
	ID string

	AssetType AssetType
	AssetID   string
	SiteID    string

	MaintenanceType MaintenanceType

	Frequency      ScheduleFrequency
	FrequencyValue int

	StartDate         time.Time
	EndDate           *time.Time
	NextScheduledDate time.Time

	Template TicketTemplate

	// IsActive is flipped off instead of deleting, so history survives.
	IsActive bool

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
