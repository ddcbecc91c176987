package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// ScheduleRepository encapsulates recurrence definition persistence.
// Schedules are deactivated, never deleted.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.MaintenanceSchedule) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceSchedule, error)
	ListActive(ctx context.Context, siteID *string) ([]domain.MaintenanceSchedule, error)
	Deactivate(ctx context.Context, id string) error
	AdvanceCursor(ctx context.Context, id string, next time.Time) error
}

type scheduleRepository struct {
	q Querier
}

const scheduleColumns = `id, asset_type, asset_id, site_id, maintenance_type,
       frequency, frequency_value, start_date, end_date, next_scheduled_date,
       ticket_template, is_active, created_by, created_at, updated_at`

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.MaintenanceSchedule) error {
	template, err := json.Marshal(schedule.Template)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO maintenance_schedules (
            asset_type, asset_id, site_id, maintenance_type,
            frequency, frequency_value, start_date, end_date, next_scheduled_date,
            ticket_template, is_active, created_by
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.q.QueryRow(ctx, query,
		schedule.AssetType,
		schedule.AssetID,
		schedule.SiteID,
		schedule.MaintenanceType,
		schedule.Frequency,
		schedule.FrequencyValue,
		schedule.StartDate,
		schedule.EndDate,
		schedule.NextScheduledDate,
		template,
		schedule.IsActive,
		schedule.CreatedBy,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM maintenance_schedules WHERE id=$1`
	return scanSchedule(r.q.QueryRow(ctx, query, id))
}

func (r *scheduleRepository) ListActive(ctx context.Context, siteID *string) ([]domain.MaintenanceSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM maintenance_schedules WHERE is_active`
	args := []any{}
	if siteID != nil {
		query += ` AND site_id=$1`
		args = append(args, *siteID)
	}
	query += ` ORDER BY next_scheduled_date ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceSchedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *schedule)
	}
	return result, rows.Err()
}

func (r *scheduleRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE maintenance_schedules SET is_active=FALSE, updated_at=NOW() WHERE id=$1`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AdvanceCursor moves next_scheduled_date forward after the external
// materialization job promotes a virtual occurrence to a real ticket.
func (r *scheduleRepository) AdvanceCursor(ctx context.Context, id string, next time.Time) error {
	const query = `UPDATE maintenance_schedules SET next_scheduled_date=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.q.Exec(ctx, query, next, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSchedule(row pgx.Row) (*domain.MaintenanceSchedule, error) {
	var schedule domain.MaintenanceSchedule
	var template []byte
	if err := row.Scan(
		&schedule.ID,
		&schedule.AssetType,
		&schedule.AssetID,
		&schedule.SiteID,
		&schedule.MaintenanceType,
		&schedule.Frequency,
		&schedule.FrequencyValue,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.NextScheduledDate,
		&template,
		&schedule.IsActive,
		&schedule.CreatedBy,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(template) > 0 {
		if err := json.Unmarshal(template, &schedule.Template); err != nil {
			return nil, err
		}
	}
	return &schedule, nil
}
