package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/events"
	"github.com/fleetops/maintenance-service/internal/repository"
	apperrors "github.com/fleetops/maintenance-service/pkg/util"
)

// MaintenanceService owns the maintenance ticket lifecycle: creation,
// partial updates, and the closed set of state transitions. Every
// state-changing operation writes its audit event in the same
// transaction as the ticket mutation.
type MaintenanceService struct {
	store      repository.Store
	sequence   *SequenceAllocator
	assets     repository.AssetDirectory
	issues     repository.IssueTicketCloser
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MaintenanceDependencies bundles collaborators for the service.
type MaintenanceDependencies struct {
	Store      repository.Store
	Sequence   *SequenceAllocator
	Assets     repository.AssetDirectory
	Issues     repository.IssueTicketCloser
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(deps MaintenanceDependencies) *MaintenanceService {
	return &MaintenanceService{
		store:      deps.Store,
		sequence:   deps.Sequence,
		assets:     deps.Assets,
		issues:     deps.Issues,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// MaintenanceCreateInput describes ticket creation payload.
type MaintenanceCreateInput struct {
	Title           string
	Description     string
	MaintenanceType domain.MaintenanceType
	Priority        domain.MaintenancePriority
	AssetType       domain.AssetType
	AssetID         string
	SiteID          string
	ScheduledDate   *time.Time
	EstimatedCost   *float64
	CostCurrency    string
	IsUrgent        bool
	ClientVisible   bool
	AssignedTo      []string

	// OriginatingTicketID links the work back to the issue ticket that
	// spawned it; verification will close that ticket.
	OriginatingTicketID *string

	// IsRecurring and RecurringScheduleID carry schedule provenance
	// when the materialization job promotes a virtual occurrence into
	// a real ticket.
	IsRecurring         bool
	RecurringScheduleID *string
}

// MaintenanceUpdateInput carries a partial update. Nil fields are left
// untouched; only provided fields are merged onto the ticket.
type MaintenanceUpdateInput struct {
	Title         *string
	Description   *string
	Priority      *domain.MaintenancePriority
	Status        *domain.MaintenanceStatus
	ScheduledDate *time.Time
	EstimatedCost *float64
	ActualCost    *float64
	CostCurrency  *string
	IsUrgent      *bool
	ClientVisible *bool
	AssignedTo    *[]string
}

// MaintenanceDetail bundles a ticket with its children for detail views.
type MaintenanceDetail struct {
	Ticket           domain.MaintenanceTicket
	AssetDisplayName string
	AuditTrail       []domain.MaintenanceAuditEvent
	Comments         []domain.MaintenanceComment
	Attachments      []domain.MaintenanceAttachment
}

// allowedTransitions is the closed transition table. An operation
// whose source status is not listed for the target fails with a
// conflict instead of trusting the caller.
var allowedTransitions = map[domain.MaintenanceStatus][]domain.MaintenanceStatus{
	domain.StatusPendingApproval: {domain.StatusApproved},
	domain.StatusScheduled:       {domain.StatusApproved, domain.StatusInProgress},
	domain.StatusApproved:        {domain.StatusInProgress},
	domain.StatusInProgress:      {domain.StatusAwaitingParts, domain.StatusCompleted},
	domain.StatusAwaitingParts:   {domain.StatusInProgress},
	domain.StatusCompleted:       {domain.StatusVerified},
	domain.StatusVerified:        {domain.StatusClosed},
	domain.StatusClosed:          {},
}

func isValidTransition(current, next domain.MaintenanceStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func ensureTransition(current, next domain.MaintenanceStatus) error {
	if !isValidTransition(current, next) {
		return apperrors.NewConflict(
			fmt.Sprintf("cannot move maintenance ticket from %s to %s", current, next),
			map[string]any{"current_status": current, "requested_status": next},
		)
	}
	return nil
}

// Create validates and persists a new maintenance ticket, allocating
// its ticket number and recording the created audit event.
func (s *MaintenanceService) Create(ctx context.Context, actor domain.Actor, input MaintenanceCreateInput) (*domain.MaintenanceTicket, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.AssetType == "" || input.AssetID == "" {
		return nil, apperrors.NewValidationError("asset reference required", map[string]any{
			"asset_type": input.AssetType,
			"asset_id":   input.AssetID,
		})
	}

	ticket := &domain.MaintenanceTicket{
		TicketNumber:        s.sequence.NextNumber(ctx),
		Title:               strings.TrimSpace(input.Title),
		Description:         strings.TrimSpace(input.Description),
		MaintenanceType:     input.MaintenanceType,
		Priority:            input.Priority,
		AssetType:           input.AssetType,
		AssetID:             input.AssetID,
		SiteID:              input.SiteID,
		Status:              domain.StatusPendingApproval,
		ScheduledDate:       input.ScheduledDate,
		EstimatedCost:       input.EstimatedCost,
		CostCurrency:        input.CostCurrency,
		IsUrgent:            input.IsUrgent,
		ClientVisible:       input.ClientVisible,
		OriginatingTicketID: input.OriginatingTicketID,
		IsRecurring:         input.IsRecurring,
		RecurringScheduleID: input.RecurringScheduleID,
		CreatedBy:           actor.ID,
		CreatedByRole:       string(actor.Role),
		AssignedTo:          input.AssignedTo,
	}
	if ticket.MaintenanceType == "" {
		ticket.MaintenanceType = domain.TypeCorrective
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.PriorityMedium
	}
	if ticket.CostCurrency == "" {
		ticket.CostCurrency = "USD"
	}
	if ticket.RecurringScheduleID != nil {
		ticket.IsRecurring = true
	}
	if input.ScheduledDate != nil {
		ticket.Status = domain.StatusScheduled
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return err
		}
		return tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: ticket.ID,
			EventType:           domain.AuditCreated,
			Description:         fmt.Sprintf("maintenance ticket #%d created", ticket.TicketNumber),
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			Metadata: map[string]any{
				"asset_type": ticket.AssetType,
				"asset_id":   ticket.AssetID,
				"priority":   ticket.Priority,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventMaintenanceCreated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.MaintenanceCreatedPayload{
			TicketNumber:    ticket.TicketNumber,
			MaintenanceType: ticket.MaintenanceType,
			Priority:        ticket.Priority,
			AssetType:       ticket.AssetType,
			AssetID:         ticket.AssetID,
			SiteID:          ticket.SiteID,
			Title:           ticket.Title,
		},
	})
	return ticket, nil
}

// Update merges the provided fields onto the ticket. A status change
// inside an update must still be a legal transition.
func (s *MaintenanceService) Update(ctx context.Context, id string, actor domain.Actor, input MaintenanceUpdateInput) (*domain.MaintenanceTicket, error) {
	var ticket *domain.MaintenanceTicket
	var oldStatus, newStatus domain.MaintenanceStatus

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		t, err := tx.Tickets().GetByID(ctx, id)
		if err != nil {
			return mapTicketErr(err)
		}
		oldStatus = t.Status

		diff := map[string]any{}
		if input.Title != nil {
			t.Title = strings.TrimSpace(*input.Title)
			diff["title"] = t.Title
		}
		if input.Description != nil {
			t.Description = strings.TrimSpace(*input.Description)
			diff["description"] = t.Description
		}
		if input.Priority != nil {
			t.Priority = *input.Priority
			diff["priority"] = t.Priority
		}
		if input.ScheduledDate != nil {
			t.ScheduledDate = input.ScheduledDate
			diff["scheduled_date"] = input.ScheduledDate
		}
		if input.EstimatedCost != nil {
			t.EstimatedCost = input.EstimatedCost
			diff["estimated_cost"] = *input.EstimatedCost
		}
		if input.ActualCost != nil {
			t.ActualCost = input.ActualCost
			diff["actual_cost"] = *input.ActualCost
		}
		if input.CostCurrency != nil {
			t.CostCurrency = *input.CostCurrency
			diff["cost_currency"] = t.CostCurrency
		}
		if input.IsUrgent != nil {
			t.IsUrgent = *input.IsUrgent
			diff["is_urgent"] = t.IsUrgent
		}
		if input.ClientVisible != nil {
			t.ClientVisible = *input.ClientVisible
			diff["client_visible"] = t.ClientVisible
		}
		if input.AssignedTo != nil {
			t.AssignedTo = *input.AssignedTo
			diff["assigned_to"] = t.AssignedTo
		}
		if input.Status != nil && *input.Status != t.Status {
			if err := ensureTransition(t.Status, *input.Status); err != nil {
				return err
			}
			t.Status = *input.Status
			diff["status"] = t.Status
		}

		if err := tx.Tickets().Update(ctx, t); err != nil {
			return err
		}

		event := &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: t.ID,
			EventType:           domain.AuditStatusChanged,
			Description:         "ticket updated",
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			Metadata:            diff,
		}
		if t.Status != oldStatus {
			event.Description = fmt.Sprintf("status changed from %s to %s", oldStatus, t.Status)
			event.PreviousValue = strPtr(string(oldStatus))
			event.NewValue = strPtr(string(t.Status))
		}
		if err := tx.Audit().Create(ctx, event); err != nil {
			return err
		}

		ticket = t
		newStatus = t.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus != oldStatus {
		s.publishStatusChange(ctx, ticket.ID, actor, oldStatus, newStatus)
	}
	return ticket, nil
}

// Approve moves a ticket awaiting sign-off into the approved state.
func (s *MaintenanceService) Approve(ctx context.Context, id string, actor domain.Actor) (*domain.MaintenanceTicket, error) {
	return s.transition(ctx, id, actor, domain.StatusApproved, domain.AuditApproved, "maintenance approved",
		func(t *domain.MaintenanceTicket, now time.Time) {
			t.ApprovedBy = &actor.ID
			t.ApprovedAt = &now
		})
}

// StartWork marks the moment a technician begins the work.
func (s *MaintenanceService) StartWork(ctx context.Context, id string, actor domain.Actor) (*domain.MaintenanceTicket, error) {
	return s.transition(ctx, id, actor, domain.StatusInProgress, domain.AuditStarted, "work started",
		func(t *domain.MaintenanceTicket, now time.Time) {
			t.WorkStartedAt = &now
		})
}

// ReportAwaitingParts pauses in-progress work for lack of parts.
func (s *MaintenanceService) ReportAwaitingParts(ctx context.Context, id string, actor domain.Actor) (*domain.MaintenanceTicket, error) {
	return s.transition(ctx, id, actor, domain.StatusAwaitingParts, domain.AuditStatusChanged, "work paused awaiting parts", nil)
}

// ResumeWork returns a parts-blocked ticket to in-progress.
func (s *MaintenanceService) ResumeWork(ctx context.Context, id string, actor domain.Actor) (*domain.MaintenanceTicket, error) {
	return s.transition(ctx, id, actor, domain.StatusInProgress, domain.AuditStatusChanged, "work resumed", nil)
}

// CompleteWork records the outcome of the work and marks it done.
func (s *MaintenanceService) CompleteWork(ctx context.Context, id string, actor domain.Actor, workPerformed string, laborHours float64) (*domain.MaintenanceTicket, error) {
	performed := strings.TrimSpace(workPerformed)
	if performed == "" {
		return nil, apperrors.NewValidationError("work_performed required", nil)
	}
	ticket, err := s.transition(ctx, id, actor, domain.StatusCompleted, domain.AuditCompleted, "work completed",
		func(t *domain.MaintenanceTicket, now time.Time) {
			t.WorkCompletedAt = &now
			t.WorkPerformed = &performed
			t.LaborHours = &laborHours
		})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventMaintenanceCompleted,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload:  events.CompletedPayload{WorkPerformed: performed, LaborHours: laborHours},
	})
	return ticket, nil
}

// Verify signs the completed work off. When the ticket was spawned
// from an issue ticket, that originating ticket is closed as a
// cross-entity consequence. The close runs before the transition
// commits: a closer fault rolls the verify back so the caller can
// retry instead of stranding the issue ticket open.
func (s *MaintenanceService) Verify(ctx context.Context, id string, actor domain.Actor, notes string) (*domain.MaintenanceTicket, error) {
	var ticket *domain.MaintenanceTicket
	var oldStatus domain.MaintenanceStatus

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		t, err := tx.Tickets().GetByID(ctx, id)
		if err != nil {
			return mapTicketErr(err)
		}
		if err := ensureTransition(t.Status, domain.StatusVerified); err != nil {
			return err
		}
		oldStatus = t.Status
		now := time.Now()
		t.Status = domain.StatusVerified
		t.VerifiedBy = &actor.ID
		t.VerifiedAt = &now
		if trimmed := strings.TrimSpace(notes); trimmed != "" {
			t.VerificationNotes = &trimmed
		}
		if err := tx.Tickets().Update(ctx, t); err != nil {
			return err
		}
		if err := tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: t.ID,
			EventType:           domain.AuditVerified,
			Description:         "work verified",
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			PreviousValue:       strPtr(string(oldStatus)),
			NewValue:            strPtr(string(domain.StatusVerified)),
		}); err != nil {
			return err
		}
		if t.OriginatingTicketID != nil {
			if err := s.issues.CloseIssueTicket(ctx, *t.OriginatingTicketID); err != nil {
				s.logger.Error("failed to close originating issue ticket",
					zap.String("maintenance_ticket_id", t.ID),
					zap.String("issue_ticket_id", *t.OriginatingTicketID),
					zap.Error(err))
				return err
			}
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChange(ctx, ticket.ID, actor, oldStatus, domain.StatusVerified)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventMaintenanceVerified,
		TicketID: ticket.ID,
		Actor:    actor,
	})
	return ticket, nil
}

// Close is the terminal transition; closed tickets never change again.
func (s *MaintenanceService) Close(ctx context.Context, id string, actor domain.Actor) (*domain.MaintenanceTicket, error) {
	return s.transition(ctx, id, actor, domain.StatusClosed, domain.AuditStatusChanged, "maintenance closed",
		func(t *domain.MaintenanceTicket, now time.Time) {
			t.ClosedAt = &now
		})
}

// Assign replaces the assignee set. Allowed in any non-terminal state
// without a formal transition.
func (s *MaintenanceService) Assign(ctx context.Context, id string, actor domain.Actor, assignees []string) (*domain.MaintenanceTicket, error) {
	var ticket *domain.MaintenanceTicket
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		t, err := tx.Tickets().GetByID(ctx, id)
		if err != nil {
			return mapTicketErr(err)
		}
		if t.Status.IsTerminal() {
			return apperrors.NewConflict("closed tickets cannot be reassigned", nil)
		}
		previous := t.AssignedTo
		t.AssignedTo = assignees
		if err := tx.Tickets().Update(ctx, t); err != nil {
			return err
		}
		if err := tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: t.ID,
			EventType:           domain.AuditAssigned,
			Description:         "ticket assignment changed",
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			Metadata: map[string]any{
				"previous_assignees": previous,
				"assignees":          assignees,
			},
		}); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventMaintenanceAssigned,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload:  events.AssignedPayload{AssignedTo: assignees},
	})
	return ticket, nil
}

// AddComment appends a comment and its audit event.
func (s *MaintenanceService) AddComment(ctx context.Context, id string, actor domain.Actor, body string) (*domain.MaintenanceComment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	comment := &domain.MaintenanceComment{
		MaintenanceTicketID: id,
		Body:                body,
		AuthorID:            actor.ID,
		AuthorRole:          string(actor.Role),
	}
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Tickets().GetByID(ctx, id); err != nil {
			return mapTicketErr(err)
		}
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}
		return tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: id,
			EventType:           domain.AuditCommentAdded,
			Description:         "comment added",
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			Metadata:            map[string]any{"preview": stringPreview(body, 120)},
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// AddAttachment appends attachment metadata and its audit event.
func (s *MaintenanceService) AddAttachment(ctx context.Context, id string, actor domain.Actor, attachment domain.MaintenanceAttachment) (*domain.MaintenanceAttachment, error) {
	if attachment.StorageKey == "" || attachment.FileName == "" {
		return nil, apperrors.NewValidationError("storage_key and file_name required", nil)
	}
	attachment.MaintenanceTicketID = id
	attachment.UploadedBy = actor.ID

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Tickets().GetByID(ctx, id); err != nil {
			return mapTicketErr(err)
		}
		if err := tx.Attachments().Create(ctx, &attachment); err != nil {
			return err
		}
		return tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: id,
			EventType:           domain.AuditAttachmentAdded,
			Description:         "attachment added",
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			Metadata:            map[string]any{"file_name": attachment.FileName},
		})
	})
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// AddPart appends one consumed part to the ticket.
func (s *MaintenanceService) AddPart(ctx context.Context, id string, actor domain.Actor, part domain.PartUsed) (*domain.MaintenanceTicket, error) {
	if strings.TrimSpace(part.PartName) == "" {
		return nil, apperrors.NewValidationError("part_name required", nil)
	}
	if part.Quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}

	var ticket *domain.MaintenanceTicket
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		t, err := tx.Tickets().GetByID(ctx, id)
		if err != nil {
			return mapTicketErr(err)
		}
		t.PartsUsed = append(t.PartsUsed, part)
		if err := tx.Tickets().Update(ctx, t); err != nil {
			return err
		}
		if err := tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: t.ID,
			EventType:           domain.AuditPartAdded,
			Description:         fmt.Sprintf("part added: %s x%d", part.PartName, part.Quantity),
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			Metadata:            map[string]any{"part_name": part.PartName, "quantity": part.Quantity},
		}); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Get returns the bare ticket.
func (s *MaintenanceService) Get(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err)
	}
	return ticket, nil
}

// GetDetail returns the ticket with its audit trail (oldest first),
// comments, attachments, and the asset's display name.
func (s *MaintenanceService) GetDetail(ctx context.Context, id string) (*MaintenanceDetail, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	trail, err := s.store.Audit().ListByTicket(ctx, id, repository.OrderOldestFirst)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().ListByTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	attachments, err := s.store.Attachments().ListByTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &MaintenanceDetail{
		Ticket:      *ticket,
		AuditTrail:  trail,
		Comments:    comments,
		Attachments: attachments,
	}
	if s.assets != nil {
		// Display-only; a failed lookup leaves the name blank.
		if name, err := s.assets.DisplayName(ctx, ticket.AssetType, ticket.AssetID); err == nil {
			detail.AssetDisplayName = name
		}
	}
	return detail, nil
}

// List returns tickets matching the filter.
func (s *MaintenanceService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.MaintenanceTicket, error) {
	return s.store.Tickets().ListWithFilter(ctx, filter)
}

// transition runs one table-checked state change: load, validate,
// mutate, persist, and audit inside a single transaction.
func (s *MaintenanceService) transition(
	ctx context.Context,
	id string,
	actor domain.Actor,
	target domain.MaintenanceStatus,
	auditType domain.AuditEventType,
	description string,
	mutate func(*domain.MaintenanceTicket, time.Time),
) (*domain.MaintenanceTicket, error) {
	var ticket *domain.MaintenanceTicket
	var oldStatus domain.MaintenanceStatus

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		t, err := tx.Tickets().GetByID(ctx, id)
		if err != nil {
			return mapTicketErr(err)
		}
		if err := ensureTransition(t.Status, target); err != nil {
			return err
		}
		oldStatus = t.Status
		now := time.Now()
		t.Status = target
		if mutate != nil {
			mutate(t, now)
		}
		if err := tx.Tickets().Update(ctx, t); err != nil {
			return err
		}
		if err := tx.Audit().Create(ctx, &domain.MaintenanceAuditEvent{
			MaintenanceTicketID: t.ID,
			EventType:           auditType,
			Description:         description,
			PerformedBy:         actor.ID,
			PerformedByRole:     string(actor.Role),
			PreviousValue:       strPtr(string(oldStatus)),
			NewValue:            strPtr(string(target)),
		}); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChange(ctx, ticket.ID, actor, oldStatus, target)
	return ticket, nil
}

func (s *MaintenanceService) publishStatusChange(ctx context.Context, ticketID string, actor domain.Actor, old, next domain.MaintenanceStatus) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventMaintenanceStatusChanged,
		TicketID: ticketID,
		Actor:    actor,
		Payload:  events.StatusChangedPayload{OldStatus: old, NewStatus: next},
	})
}

func (s *MaintenanceService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func mapTicketErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("maintenance ticket", nil)
	}
	return err
}

func strPtr(s string) *string {
	return &s
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
