package dto

import "time"

// TicketTemplateDTO is the template copied onto schedule occurrences.
type TicketTemplateDTO struct {
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	Priority          string   `json:"priority,omitempty"`
	EstimatedDuration *float64 `json:"estimated_duration,omitempty"`
	AssignedTo        []string `json:"assigned_to,omitempty"`
}

// CreateScheduleRequest defines a new recurrence.
type CreateScheduleRequest struct {
	AssetType       string            `json:"asset_type"`
	AssetID         string            `json:"asset_id"`
	SiteID          string            `json:"site_id"`
	MaintenanceType string            `json:"maintenance_type"`
	Frequency       string            `json:"frequency"`
	FrequencyValue  int               `json:"frequency_value"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         *time.Time        `json:"end_date,omitempty"`
	Template        TicketTemplateDTO `json:"ticket_template"`
}

// AdvanceCursorRequest moves the materialization cursor.
type AdvanceCursorRequest struct {
	NextScheduledDate time.Time `json:"next_scheduled_date"`
}

// ScheduleResponse is the wire shape of a recurrence definition.
type ScheduleResponse struct {
	ID                string            `json:"id"`
	AssetType         string            `json:"asset_type"`
	AssetID           string            `json:"asset_id"`
	SiteID            string            `json:"site_id"`
	MaintenanceType   string            `json:"maintenance_type"`
	Frequency         string            `json:"frequency"`
	FrequencyValue    int               `json:"frequency_value"`
	StartDate         time.Time         `json:"start_date"`
	EndDate           *time.Time        `json:"end_date,omitempty"`
	NextScheduledDate time.Time         `json:"next_scheduled_date"`
	Template          TicketTemplateDTO `json:"ticket_template"`
	IsActive          bool              `json:"is_active"`
	CreatedBy         string            `json:"created_by"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// VirtualOccurrenceResponse is the wire shape of a computed occurrence.
type VirtualOccurrenceResponse struct {
	ID                string     `json:"id"`
	ScheduleID        string     `json:"schedule_id"`
	TicketNumber      int        `json:"ticket_number"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	MaintenanceType   string     `json:"maintenance_type"`
	Priority          string     `json:"priority"`
	AssetType         string     `json:"asset_type"`
	AssetID           string     `json:"asset_id"`
	SiteID            string     `json:"site_id"`
	Status            string     `json:"status"`
	ScheduledDate     time.Time  `json:"scheduled_date"`
	EstimatedDuration *float64   `json:"estimated_duration,omitempty"`
	AssignedTo        []string   `json:"assigned_to,omitempty"`
	IsRecurring       bool       `json:"is_recurring"`
}

// CalendarEntryResponse is one merged calendar row: exactly one of
// Ticket or Occurrence is set, discriminated by Kind.
type CalendarEntryResponse struct {
	Kind       string                     `json:"kind"`
	Date       time.Time                  `json:"date"`
	Ticket     *MaintenanceTicketResponse `json:"ticket,omitempty"`
	Occurrence *VirtualOccurrenceResponse `json:"occurrence,omitempty"`
}
