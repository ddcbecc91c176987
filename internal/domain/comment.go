package domain

import "time"

// MaintenanceComment is an append-only child of a ticket.
type MaintenanceComment struct {
	ID                  string
	MaintenanceTicketID string
	Body                string
	AuthorID            string
	AuthorRole          string
	CreatedAt           time.Time
}

// MaintenanceAttachment stores metadata for a file attached to a ticket.
type MaintenanceAttachment struct {
	ID                  string
	MaintenanceTicketID string
	StorageKey          string
	FileName            string
	MimeType            string
	SizeBytes           int64
	UploadedBy          string
	CreatedAt           time.Time
}
