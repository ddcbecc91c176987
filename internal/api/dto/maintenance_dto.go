package dto

import "time"

// CreateMaintenanceRequest is the ticket creation payload.
type CreateMaintenanceRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	MaintenanceType     string     `json:"maintenance_type"`
	Priority            string     `json:"priority"`
	AssetType           string     `json:"asset_type"`
	AssetID             string     `json:"asset_id"`
	SiteID              string     `json:"site_id"`
	ScheduledDate       *time.Time `json:"scheduled_date,omitempty"`
	EstimatedCost       *float64   `json:"estimated_cost,omitempty"`
	CostCurrency        string     `json:"cost_currency,omitempty"`
	IsUrgent            bool       `json:"is_urgent"`
	ClientVisible       bool       `json:"client_visible"`
	AssignedTo          []string   `json:"assigned_to,omitempty"`
	OriginatingTicketID *string    `json:"originating_ticket_id,omitempty"`
	IsRecurring         bool       `json:"is_recurring,omitempty"`
	RecurringScheduleID *string    `json:"recurring_schedule_id,omitempty"`
}

// UpdateMaintenanceRequest carries a partial update; absent fields are
// left untouched.
type UpdateMaintenanceRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Status        *string    `json:"status,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	ActualCost    *float64   `json:"actual_cost,omitempty"`
	CostCurrency  *string    `json:"cost_currency,omitempty"`
	IsUrgent      *bool      `json:"is_urgent,omitempty"`
	ClientVisible *bool      `json:"client_visible,omitempty"`
	AssignedTo    *[]string  `json:"assigned_to,omitempty"`
}

// CompleteWorkRequest finishes the work on a ticket.
type CompleteWorkRequest struct {
	WorkPerformed string  `json:"work_performed"`
	LaborHours    float64 `json:"labor_hours"`
}

// VerifyRequest signs completed work off.
type VerifyRequest struct {
	Notes string `json:"notes,omitempty"`
}

// AssignRequest replaces the assignee set.
type AssignRequest struct {
	AssignedTo []string `json:"assigned_to"`
}

// CommentRequest appends a comment.
type CommentRequest struct {
	Body string `json:"body"`
}

// AttachmentRequest appends attachment metadata.
type AttachmentRequest struct {
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// PartRequest appends a consumed part.
type PartRequest struct {
	PartName   string   `json:"part_name"`
	Quantity   int      `json:"quantity"`
	PartNumber *string  `json:"part_number,omitempty"`
	Cost       *float64 `json:"cost,omitempty"`
}

// MaintenanceTicketResponse is the wire shape of a persisted ticket.
type MaintenanceTicketResponse struct {
	ID                  string     `json:"id"`
	TicketNumber        int        `json:"ticket_number"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	MaintenanceType     string     `json:"maintenance_type"`
	Priority            string     `json:"priority"`
	AssetType           string     `json:"asset_type"`
	AssetID             string     `json:"asset_id"`
	SiteID              string     `json:"site_id"`
	Status              string     `json:"status"`
	ScheduledDate       *time.Time `json:"scheduled_date,omitempty"`
	ApprovedBy          *string    `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
	WorkStartedAt       *time.Time `json:"work_started_at,omitempty"`
	WorkCompletedAt     *time.Time `json:"work_completed_at,omitempty"`
	WorkPerformed       *string    `json:"work_performed,omitempty"`
	LaborHours          *float64   `json:"labor_hours,omitempty"`
	PartsUsed           []PartRequest `json:"parts_used,omitempty"`
	VerifiedBy          *string    `json:"verified_by,omitempty"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
	VerificationNotes   *string    `json:"verification_notes,omitempty"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
	EstimatedCost       *float64   `json:"estimated_cost,omitempty"`
	ActualCost          *float64   `json:"actual_cost,omitempty"`
	CostCurrency        string     `json:"cost_currency"`
	IsUrgent            bool       `json:"is_urgent"`
	IsRecurring         bool       `json:"is_recurring"`
	RecurringScheduleID *string    `json:"recurring_schedule_id,omitempty"`
	ClientVisible       bool       `json:"client_visible"`
	OriginatingTicketID *string    `json:"originating_ticket_id,omitempty"`
	CreatedBy           string     `json:"created_by"`
	CreatedByRole       string     `json:"created_by_role"`
	AssignedTo          []string   `json:"assigned_to,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// AuditEventResponse is the wire shape of one audit trail entry.
type AuditEventResponse struct {
	ID              string         `json:"id"`
	EventType       string         `json:"event_type"`
	Description     string         `json:"description"`
	PerformedBy     string         `json:"performed_by"`
	PerformedByRole string         `json:"performed_by_role"`
	PreviousValue   *string        `json:"previous_value,omitempty"`
	NewValue        *string        `json:"new_value,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CommentResponse is the wire shape of a comment.
type CommentResponse struct {
	ID         string    `json:"id"`
	Body       string    `json:"body"`
	AuthorID   string    `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	CreatedAt  time.Time `json:"created_at"`
}

// AttachmentResponse is the wire shape of attachment metadata.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	StorageKey string    `json:"storage_key"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// MaintenanceDetailResponse bundles a ticket with its children.
type MaintenanceDetailResponse struct {
	Ticket           MaintenanceTicketResponse `json:"ticket"`
	AssetDisplayName string                    `json:"asset_display_name,omitempty"`
	AuditTrail       []AuditEventResponse      `json:"audit_trail"`
	Comments         []CommentResponse         `json:"comments"`
	Attachments      []AttachmentResponse      `json:"attachments"`
}
