package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// AuditOrder selects the listing direction. Callers must choose one;
// list/detail views read oldest-first, summary views newest-first.
type AuditOrder string

const (
	OrderOldestFirst AuditOrder = "oldest_first"
	OrderNewestFirst AuditOrder = "newest_first"
)

// AuditRepository is the append-only audit log. No update or delete
// method exists.
type AuditRepository interface {
	Create(ctx context.Context, event *domain.MaintenanceAuditEvent) error
	ListByTicket(ctx context.Context, ticketID string, order AuditOrder) ([]domain.MaintenanceAuditEvent, error)
}

type auditRepository struct {
	q Querier
}

func (r *auditRepository) Create(ctx context.Context, event *domain.MaintenanceAuditEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO maintenance_audit_events (
            maintenance_ticket_id, event_type, description,
            performed_by, performed_by_role, previous_value, new_value, metadata
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.q.QueryRow(ctx, query,
		event.MaintenanceTicketID,
		event.EventType,
		event.Description,
		event.PerformedBy,
		event.PerformedByRole,
		event.PreviousValue,
		event.NewValue,
		metadata,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *auditRepository) ListByTicket(ctx context.Context, ticketID string, order AuditOrder) ([]domain.MaintenanceAuditEvent, error) {
	direction := "ASC"
	if order == OrderNewestFirst {
		direction = "DESC"
	}
	query := `
        SELECT id, maintenance_ticket_id, event_type, description,
               performed_by, performed_by_role, previous_value, new_value, metadata, created_at
        FROM maintenance_audit_events WHERE maintenance_ticket_id=$1
        ORDER BY created_at ` + direction + `, id ` + direction

	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceAuditEvent
	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}

func scanAuditEvent(row pgx.Row) (*domain.MaintenanceAuditEvent, error) {
	var event domain.MaintenanceAuditEvent
	var metadata []byte
	if err := row.Scan(
		&event.ID,
		&event.MaintenanceTicketID,
		&event.EventType,
		&event.Description,
		&event.PerformedBy,
		&event.PerformedByRole,
		&event.PreviousValue,
		&event.NewValue,
		&metadata,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return nil, err
		}
	}
	return &event, nil
}
