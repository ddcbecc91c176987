package domain

import "time"

// MaintenanceStatus enumerates lifecycle states for maintenance tickets.
type MaintenanceStatus string

const (
	StatusPendingApproval MaintenanceStatus = "pending_approval"
	StatusScheduled       MaintenanceStatus = "scheduled"
	StatusApproved        MaintenanceStatus = "approved"
	StatusInProgress      MaintenanceStatus = "in_progress"
	StatusAwaitingParts   MaintenanceStatus = "awaiting_parts"
	StatusCompleted       MaintenanceStatus = "completed"
	StatusVerified        MaintenanceStatus = "verified"
	StatusClosed          MaintenanceStatus = "closed"
)

// MaintenanceType classifies why the work exists.
type MaintenanceType string

const (
	TypePreventive MaintenanceType = "preventive"
	TypeCorrective MaintenanceType = "corrective"
	TypePredictive MaintenanceType = "predictive"
	TypeInspection MaintenanceType = "inspection"
	TypeUpgrade    MaintenanceType = "upgrade"
)

// MaintenancePriority enumerates urgency.
type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

// AssetType identifies a level of the fleet hierarchy a ticket targets.
type AssetType string

const (
	AssetSite      AssetType = "site"
	AssetContainer AssetType = "container"
	AssetRack      AssetType = "rack"
	AssetASIC      AssetType = "asic"
)

// PartUsed records one part consumed during the work.
type PartUsed struct {
	PartName   string   `json:"part_name"`
	Quantity   int      `json:"quantity"`
	PartNumber *string  `json:"part_number,omitempty"`
	Cost       *float64 `json:"cost,omitempty"`
}

// MaintenanceTicket is the aggregate for a unit of maintenance work.
// Tickets are never hard-deleted; closure is the terminal state.
type MaintenanceTicket struct {
	ID           string
	TicketNumber int

	Title       string
	Description string

	MaintenanceType MaintenanceType
	Priority        MaintenancePriority

	AssetType AssetType
	AssetID   string
	SiteID    string

	Status        MaintenanceStatus
	ScheduledDate *time.Time

	ApprovedBy *string
	ApprovedAt *time.Time

	WorkStartedAt   *time.Time
	WorkCompletedAt *time.Time
	WorkPerformed   *string
	LaborHours      *float64
	PartsUsed       []PartUsed

	VerifiedBy        *string
	VerifiedAt        *time.Time
	VerificationNotes *string
	ClosedAt          *time.Time

	EstimatedCost *float64
	ActualCost    *float64
	CostCurrency  string

	IsUrgent            bool
	IsRecurring         bool
	RecurringScheduleID *string
	ClientVisible       bool

	// OriginatingTicketID links back to the issue ticket this work was
	// spawned from, when any. Verification closes that ticket.
	OriginatingTicketID *string

	CreatedBy     string
	CreatedByRole string
	AssignedTo    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s MaintenanceStatus) IsTerminal() bool {
	return s == StatusClosed
}
