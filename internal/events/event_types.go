package events

import (
	"time"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMaintenanceCreated       EventType = "maintenance_created"
	EventMaintenanceStatusChanged EventType = "maintenance_status_changed"
	EventMaintenanceAssigned      EventType = "maintenance_assigned"
	EventMaintenanceCompleted     EventType = "maintenance_completed"
	EventMaintenanceVerified      EventType = "maintenance_verified"
	EventScheduleCreated          EventType = "schedule_created"
	EventScheduleDeactivated      EventType = "schedule_deactivated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	TicketID  string       `json:"ticket_id,omitempty"`
	Actor     domain.Actor `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload,omitempty"`
}

// MaintenanceCreatedPayload payload.
type MaintenanceCreatedPayload struct {
	TicketNumber    int                        `json:"ticket_number"`
	MaintenanceType domain.MaintenanceType     `json:"maintenance_type"`
	Priority        domain.MaintenancePriority `json:"priority"`
	AssetType       domain.AssetType           `json:"asset_type"`
	AssetID         string                     `json:"asset_id"`
	SiteID          string                     `json:"site_id"`
	Title           string                     `json:"title"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.MaintenanceStatus `json:"old_status"`
	NewStatus domain.MaintenanceStatus `json:"new_status"`
}

// CompletedPayload payload.
type CompletedPayload struct {
	WorkPerformed string  `json:"work_performed"`
	LaborHours    float64 `json:"labor_hours"`
}

// AssignedPayload payload.
type AssignedPayload struct {
	AssignedTo []string `json:"assigned_to"`
}

// SchedulePayload payload.
type SchedulePayload struct {
	ScheduleID string                   `json:"schedule_id"`
	SiteID     string                   `json:"site_id"`
	Frequency  domain.ScheduleFrequency `json:"frequency,omitempty"`
}
