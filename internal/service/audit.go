package service

import (
	"context"

	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/repository"
)

// AuditRecorder exposes the append-only ticket history. State-changing
// operations write their events transactionally inside
// MaintenanceService; this type serves standalone appends and reads.
type AuditRecorder struct {
	store repository.Store
}

// NewAuditRecorder constructs the recorder.
func NewAuditRecorder(store repository.Store) *AuditRecorder {
	return &AuditRecorder{store: store}
}

// Record appends one immutable event and returns its id.
func (r *AuditRecorder) Record(ctx context.Context, event *domain.MaintenanceAuditEvent) (string, error) {
	if err := r.store.Audit().Create(ctx, event); err != nil {
		return "", err
	}
	return event.ID, nil
}

// ListFor returns a ticket's events in the requested order. The order
// is explicit: detail views read oldest-first, summaries newest-first.
func (r *AuditRecorder) ListFor(ctx context.Context, ticketID string, order repository.AuditOrder) ([]domain.MaintenanceAuditEvent, error) {
	return r.store.Audit().ListByTicket(ctx, ticketID, order)
}
