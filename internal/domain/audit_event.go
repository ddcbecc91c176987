package domain

import "time"

// AuditEventType captures what happened to a ticket.
type AuditEventType string

const (
	AuditCreated         AuditEventType = "created"
	AuditStatusChanged   AuditEventType = "status_changed"
	AuditAssigned        AuditEventType = "assigned"
	AuditApproved        AuditEventType = "approved"
	AuditStarted         AuditEventType = "started"
	AuditCompleted       AuditEventType = "completed"
	AuditVerified        AuditEventType = "verified"
	AuditPartAdded       AuditEventType = "part_added"
	AuditAttachmentAdded AuditEventType = "attachment_added"
	AuditCommentAdded    AuditEventType = "comment_added"
)

// MaintenanceAuditEvent is an immutable audit trail entry. Rows are
// appended and never updated or deleted.
type MaintenanceAuditEvent struct {
	ID                  string
	MaintenanceTicketID string
	EventType           AuditEventType
	Description         string
	PerformedBy         string
	PerformedByRole     string
	PreviousValue       *string
	NewValue            *string
	Metadata            map[string]any
	CreatedAt           time.Time
}
