package domain

import "time"

// VirtualOccurrence is a computed projection of a schedule onto one
// future date. It is never persisted, never numbered by the sequence
// allocator, and never audited; it exists only for display.
type VirtualOccurrence struct {
	// ID is synthesized as "recurring-<scheduleID>-<unixMilli>" and is
	// stable for a given schedule snapshot.
	ID         string
	ScheduleID string

	// TicketNumber is a deterministic hash of the schedule id folded
	// into the 9000-9999 band. Distinct schedules may collide.
	TicketNumber int

	Title       string
	Description string

	MaintenanceType MaintenanceType
	Priority        MaintenancePriority

	AssetType AssetType
	AssetID   string
	SiteID    string

	Status            MaintenanceStatus
	ScheduledDate     time.Time
	EstimatedDuration *float64
	AssignedTo        []string
}

// CalendarEntry is either a persisted ticket or a virtual occurrence.
// The interface is sealed; consumers switch on the two variants.
type CalendarEntry interface {
	// EntryDate is the date the entry sorts under in calendar views.
	EntryDate() time.Time

	calendarEntry()
}

// PersistedEntry wraps a real, stored ticket.
type PersistedEntry struct {
	Ticket MaintenanceTicket
}

// VirtualEntry wraps a computed occurrence of a schedule.
type VirtualEntry struct {
	Occurrence VirtualOccurrence
}

func (e PersistedEntry) calendarEntry() {}
func (e VirtualEntry) calendarEntry()   {}

func (e PersistedEntry) EntryDate() time.Time {
	if e.Ticket.ScheduledDate != nil {
		return *e.Ticket.ScheduledDate
	}
	return e.Ticket.CreatedAt
}

func (e VirtualEntry) EntryDate() time.Time {
	return e.Occurrence.ScheduledDate
}
