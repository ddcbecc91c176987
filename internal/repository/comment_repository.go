package repository

import (
	"context"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// CommentRepository stores append-only ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.MaintenanceComment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.MaintenanceComment, error)
}

type commentRepository struct {
	q Querier
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.MaintenanceComment) error {
	const query = `
        INSERT INTO maintenance_comments (maintenance_ticket_id, body, author_id, author_role)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.q.QueryRow(ctx, query,
		comment.MaintenanceTicketID,
		comment.Body,
		comment.AuthorID,
		comment.AuthorRole,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.MaintenanceComment, error) {
	const query = `
        SELECT id, maintenance_ticket_id, body, author_id, author_role, created_at
        FROM maintenance_comments WHERE maintenance_ticket_id=$1
        ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceComment
	for rows.Next() {
		var comment domain.MaintenanceComment
		if err := rows.Scan(
			&comment.ID,
			&comment.MaintenanceTicketID,
			&comment.Body,
			&comment.AuthorID,
			&comment.AuthorRole,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
