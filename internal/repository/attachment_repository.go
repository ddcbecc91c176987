package repository

import (
	"context"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// AttachmentRepository stores append-only ticket attachments.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.MaintenanceAttachment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.MaintenanceAttachment, error)
}

type attachmentRepository struct {
	q Querier
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.MaintenanceAttachment) error {
	const query = `
        INSERT INTO maintenance_attachments (maintenance_ticket_id, storage_key, file_name, mime_type, size_bytes, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.q.QueryRow(ctx, query,
		attachment.MaintenanceTicketID,
		attachment.StorageKey,
		attachment.FileName,
		attachment.MimeType,
		attachment.SizeBytes,
		attachment.UploadedBy,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.MaintenanceAttachment, error) {
	const query = `
        SELECT id, maintenance_ticket_id, storage_key, file_name, mime_type, size_bytes, uploaded_by, created_at
        FROM maintenance_attachments WHERE maintenance_ticket_id=$1
        ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceAttachment
	for rows.Next() {
		var attachment domain.MaintenanceAttachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.MaintenanceTicketID,
			&attachment.StorageKey,
			&attachment.FileName,
			&attachment.MimeType,
			&attachment.SizeBytes,
			&attachment.UploadedBy,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
