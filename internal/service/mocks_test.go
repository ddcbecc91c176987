package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/repository"
)

// mockStore implements repository.Store in memory. InTx snapshots the
// collections and restores them when the closure fails, so tests can
// assert that a failed operation leaves no partial writes behind.
type mockStore struct {
	tickets     map[string]*domain.MaintenanceTicket
	schedules   map[string]*domain.MaintenanceSchedule
	auditEvents []domain.MaintenanceAuditEvent
	comments    []domain.MaintenanceComment
	attachments []domain.MaintenanceAttachment

	counter    int
	counterErr error

	nextTicketID   int
	nextScheduleID int
	nextEventID    int
}

func newMockStore() *mockStore {
	return &mockStore{
		tickets:   make(map[string]*domain.MaintenanceTicket),
		schedules: make(map[string]*domain.MaintenanceSchedule),
	}
}

func (m *mockStore) Tickets() repository.TicketRepository         { return &mockTicketRepo{store: m} }
func (m *mockStore) Schedules() repository.ScheduleRepository     { return &mockScheduleRepo{store: m} }
func (m *mockStore) Audit() repository.AuditRepository            { return &mockAuditRepo{store: m} }
func (m *mockStore) Comments() repository.CommentRepository       { return &mockCommentRepo{store: m} }
func (m *mockStore) Attachments() repository.AttachmentRepository { return &mockAttachmentRepo{store: m} }
func (m *mockStore) Counters() repository.CounterRepository       { return &mockCounterRepo{store: m} }

func (m *mockStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	tickets := make(map[string]*domain.MaintenanceTicket, len(m.tickets))
	for id, ticket := range m.tickets {
		clone := *ticket
		tickets[id] = &clone
	}
	schedules := make(map[string]*domain.MaintenanceSchedule, len(m.schedules))
	for id, schedule := range m.schedules {
		clone := *schedule
		schedules[id] = &clone
	}
	events := len(m.auditEvents)
	comments := len(m.comments)
	attachments := len(m.attachments)

	if err := fn(m); err != nil {
		m.tickets = tickets
		m.schedules = schedules
		m.auditEvents = m.auditEvents[:events]
		m.comments = m.comments[:comments]
		m.attachments = m.attachments[:attachments]
		return err
	}
	return nil
}

func (m *mockStore) eventsFor(ticketID string) []domain.MaintenanceAuditEvent {
	var result []domain.MaintenanceAuditEvent
	for _, event := range m.auditEvents {
		if event.MaintenanceTicketID == ticketID {
			result = append(result, event)
		}
	}
	return result
}

type mockTicketRepo struct {
	store *mockStore
}

func (r *mockTicketRepo) Create(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	r.store.nextTicketID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.store.nextTicketID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	r.store.tickets[ticket.ID] = &clone
	return nil
}

func (r *mockTicketRepo) Update(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	if _, ok := r.store.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	r.store.tickets[ticket.ID] = &clone
	return nil
}

func (r *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.MaintenanceTicket, error) {
	var result []domain.MaintenanceTicket
	for _, ticket := range r.store.tickets {
		if filter.SiteID != nil && ticket.SiteID != *filter.SiteID {
			continue
		}
		if filter.AssetID != nil && ticket.AssetID != *filter.AssetID {
			continue
		}
		if filter.ScheduledFrom != nil && (ticket.ScheduledDate == nil || ticket.ScheduledDate.Before(*filter.ScheduledFrom)) {
			continue
		}
		if filter.ScheduledTo != nil && (ticket.ScheduledDate == nil || ticket.ScheduledDate.After(*filter.ScheduledTo)) {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

type mockScheduleRepo struct {
	store *mockStore
}

func (r *mockScheduleRepo) Create(ctx context.Context, schedule *domain.MaintenanceSchedule) error {
	r.store.nextScheduleID++
	schedule.ID = fmt.Sprintf("schedule-%d", r.store.nextScheduleID)
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = schedule.CreatedAt
	clone := *schedule
	r.store.schedules[schedule.ID] = &clone
	return nil
}

func (r *mockScheduleRepo) GetByID(ctx context.Context, id string) (*domain.MaintenanceSchedule, error) {
	schedule, ok := r.store.schedules[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *schedule
	return &clone, nil
}

func (r *mockScheduleRepo) ListActive(ctx context.Context, siteID *string) ([]domain.MaintenanceSchedule, error) {
	var result []domain.MaintenanceSchedule
	for _, schedule := range r.store.schedules {
		if !schedule.IsActive {
			continue
		}
		if siteID != nil && schedule.SiteID != *siteID {
			continue
		}
		result = append(result, *schedule)
	}
	return result, nil
}

func (r *mockScheduleRepo) Deactivate(ctx context.Context, id string) error {
	schedule, ok := r.store.schedules[id]
	if !ok {
		return pgx.ErrNoRows
	}
	schedule.IsActive = false
	return nil
}

func (r *mockScheduleRepo) AdvanceCursor(ctx context.Context, id string, next time.Time) error {
	schedule, ok := r.store.schedules[id]
	if !ok {
		return pgx.ErrNoRows
	}
	schedule.NextScheduledDate = next
	return nil
}

type mockAuditRepo struct {
	store *mockStore
}

func (r *mockAuditRepo) Create(ctx context.Context, event *domain.MaintenanceAuditEvent) error {
	r.store.nextEventID++
	event.ID = fmt.Sprintf("event-%d", r.store.nextEventID)
	event.CreatedAt = time.Now()
	r.store.auditEvents = append(r.store.auditEvents, *event)
	return nil
}

func (r *mockAuditRepo) ListByTicket(ctx context.Context, ticketID string, order repository.AuditOrder) ([]domain.MaintenanceAuditEvent, error) {
	result := r.store.eventsFor(ticketID)
	if order == repository.OrderNewestFirst {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result, nil
}

type mockCommentRepo struct {
	store *mockStore
}

func (r *mockCommentRepo) Create(ctx context.Context, comment *domain.MaintenanceComment) error {
	comment.ID = fmt.Sprintf("comment-%d", len(r.store.comments)+1)
	comment.CreatedAt = time.Now()
	r.store.comments = append(r.store.comments, *comment)
	return nil
}

func (r *mockCommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.MaintenanceComment, error) {
	var result []domain.MaintenanceComment
	for _, comment := range r.store.comments {
		if comment.MaintenanceTicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type mockAttachmentRepo struct {
	store *mockStore
}

func (r *mockAttachmentRepo) Create(ctx context.Context, attachment *domain.MaintenanceAttachment) error {
	attachment.ID = fmt.Sprintf("attachment-%d", len(r.store.attachments)+1)
	attachment.CreatedAt = time.Now()
	r.store.attachments = append(r.store.attachments, *attachment)
	return nil
}

func (r *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.MaintenanceAttachment, error) {
	var result []domain.MaintenanceAttachment
	for _, attachment := range r.store.attachments {
		if attachment.MaintenanceTicketID == ticketID {
			result = append(result, attachment)
		}
	}
	return result, nil
}

type mockCounterRepo struct {
	store *mockStore
}

func (r *mockCounterRepo) NextTicketNumber(ctx context.Context) (int, error) {
	if r.store.counterErr != nil {
		return 0, r.store.counterErr
	}
	if r.store.counter == 0 {
		r.store.counter = 5000
	}
	r.store.counter++
	return r.store.counter, nil
}

// mockIssueCloser records which originating tickets were closed.
type mockIssueCloser struct {
	closed []string
	err    error
}

func (c *mockIssueCloser) CloseIssueTicket(ctx context.Context, issueTicketID string) error {
	if c.err != nil {
		return c.err
	}
	c.closed = append(c.closed, issueTicketID)
	return nil
}

// mockAssetDirectory returns a fixed display name.
type mockAssetDirectory struct {
	name string
	err  error
}

func (d *mockAssetDirectory) DisplayName(ctx context.Context, assetType domain.AssetType, assetID string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.name, nil
}
