package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// TicketFilter captures dashboard search parameters.
type TicketFilter struct {
	SiteID        *string
	AssetType     *domain.AssetType
	AssetID       *string
	Statuses      []domain.MaintenanceStatus
	Priorities    []domain.MaintenancePriority
	Types         []domain.MaintenanceType
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
	Limit         int
	Offset        int
}

// TicketRepository encapsulates maintenance ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.MaintenanceTicket) error
	Update(ctx context.Context, ticket *domain.MaintenanceTicket) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.MaintenanceTicket, error)
}

type ticketRepository struct {
	q Querier
}

const ticketColumns = `id, ticket_number, title, description, maintenance_type, priority,
       asset_type, asset_id, site_id, status, scheduled_date,
       approved_by, approved_at, work_started_at, work_completed_at, work_performed,
       labor_hours, parts_used, verified_by, verified_at, verification_notes, closed_at,
       estimated_cost, actual_cost, cost_currency,
       is_urgent, is_recurring, recurring_schedule_id, client_visible, originating_ticket_id,
       created_by, created_by_role, assigned_to, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	parts, err := json.Marshal(ticket.PartsUsed)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO maintenance_tickets (
            ticket_number, title, description, maintenance_type, priority,
            asset_type, asset_id, site_id, status, scheduled_date,
            estimated_cost, cost_currency, is_urgent, is_recurring, recurring_schedule_id,
            client_visible, originating_ticket_id, created_by, created_by_role, assigned_to, parts_used
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
        RETURNING id, created_at, updated_at`
	return r.q.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Title,
		ticket.Description,
		ticket.MaintenanceType,
		ticket.Priority,
		ticket.AssetType,
		ticket.AssetID,
		ticket.SiteID,
		ticket.Status,
		ticket.ScheduledDate,
		ticket.EstimatedCost,
		ticket.CostCurrency,
		ticket.IsUrgent,
		ticket.IsRecurring,
		ticket.RecurringScheduleID,
		ticket.ClientVisible,
		ticket.OriginatingTicketID,
		ticket.CreatedBy,
		ticket.CreatedByRole,
		ticket.AssignedTo,
		parts,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	parts, err := json.Marshal(ticket.PartsUsed)
	if err != nil {
		return err
	}
	const query = `
        UPDATE maintenance_tickets SET
            title=$1, description=$2, maintenance_type=$3, priority=$4,
            status=$5, scheduled_date=$6,
            approved_by=$7, approved_at=$8, work_started_at=$9, work_completed_at=$10,
            work_performed=$11, labor_hours=$12, parts_used=$13,
            verified_by=$14, verified_at=$15, verification_notes=$16, closed_at=$17,
            estimated_cost=$18, actual_cost=$19, cost_currency=$20,
            is_urgent=$21, client_visible=$22, assigned_to=$23, updated_at=NOW()
        WHERE id=$24`
	cmd, err := r.q.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.MaintenanceType,
		ticket.Priority,
		ticket.Status,
		ticket.ScheduledDate,
		ticket.ApprovedBy,
		ticket.ApprovedAt,
		ticket.WorkStartedAt,
		ticket.WorkCompletedAt,
		ticket.WorkPerformed,
		ticket.LaborHours,
		parts,
		ticket.VerifiedBy,
		ticket.VerifiedAt,
		ticket.VerificationNotes,
		ticket.ClosedAt,
		ticket.EstimatedCost,
		ticket.ActualCost,
		ticket.CostCurrency,
		ticket.IsUrgent,
		ticket.ClientVisible,
		ticket.AssignedTo,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_tickets WHERE id=$1`, ticketColumns)
	row := r.q.QueryRow(ctx, query, id)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.MaintenanceTicket, error) {
	base := fmt.Sprintf(`SELECT %s FROM maintenance_tickets`, ticketColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SiteID != nil {
		args = append(args, *filter.SiteID)
		clauses = append(clauses, fmt.Sprintf("site_id=$%d", len(args)))
	}
	if filter.AssetType != nil {
		args = append(args, *filter.AssetType)
		clauses = append(clauses, fmt.Sprintf("asset_type=$%d", len(args)))
	}
	if filter.AssetID != nil {
		args = append(args, *filter.AssetID)
		clauses = append(clauses, fmt.Sprintf("asset_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, mt := range filter.Types {
			args = append(args, mt)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("maintenance_type IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.ScheduledFrom != nil {
		args = append(args, *filter.ScheduledFrom)
		clauses = append(clauses, fmt.Sprintf("scheduled_date >= $%d", len(args)))
	}
	if filter.ScheduledTo != nil {
		args = append(args, *filter.ScheduledTo)
		clauses = append(clauses, fmt.Sprintf("scheduled_date <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY scheduled_date ASC NULLS LAST, created_at ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.MaintenanceTicket, error) {
	var ticket domain.MaintenanceTicket
	var parts []byte
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Title,
		&ticket.Description,
		&ticket.MaintenanceType,
		&ticket.Priority,
		&ticket.AssetType,
		&ticket.AssetID,
		&ticket.SiteID,
		&ticket.Status,
		&ticket.ScheduledDate,
		&ticket.ApprovedBy,
		&ticket.ApprovedAt,
		&ticket.WorkStartedAt,
		&ticket.WorkCompletedAt,
		&ticket.WorkPerformed,
		&ticket.LaborHours,
		&parts,
		&ticket.VerifiedBy,
		&ticket.VerifiedAt,
		&ticket.VerificationNotes,
		&ticket.ClosedAt,
		&ticket.EstimatedCost,
		&ticket.ActualCost,
		&ticket.CostCurrency,
		&ticket.IsUrgent,
		&ticket.IsRecurring,
		&ticket.RecurringScheduleID,
		&ticket.ClientVisible,
		&ticket.OriginatingTicketID,
		&ticket.CreatedBy,
		&ticket.CreatedByRole,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(parts) > 0 {
		if err := json.Unmarshal(parts, &ticket.PartsUsed); err != nil {
			return nil, err
		}
	}
	return &ticket, nil
}
