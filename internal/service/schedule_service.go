package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/events"
	"github.com/fleetops/maintenance-service/internal/repository"
	apperrors "github.com/fleetops/maintenance-service/pkg/util"
)

// ScheduleService manages recurrence definitions and the merged
// calendar of persisted tickets and virtual occurrences.
type ScheduleService struct {
	store          repository.Store
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	maxOccurrences int
}

// NewScheduleService constructs the service. maxOccurrences bounds
// expansion of schedules without an end date; zero means the default.
func NewScheduleService(store repository.Store, dispatcher events.Dispatcher, logger *zap.Logger, maxOccurrences int) *ScheduleService {
	return &ScheduleService{
		store:          store,
		dispatcher:     dispatcher,
		logger:         logger,
		maxOccurrences: maxOccurrences,
	}
}

// ScheduleCreateInput describes a new recurrence definition.
type ScheduleCreateInput struct {
	AssetType       domain.AssetType
	AssetID         string
	SiteID          string
	MaintenanceType domain.MaintenanceType
	Frequency       domain.ScheduleFrequency
	FrequencyValue  int
	StartDate       time.Time
	EndDate         *time.Time
	Template        domain.TicketTemplate
}

// Create validates and persists a recurrence definition. The cursor
// starts at the schedule's start date.
func (s *ScheduleService) Create(ctx context.Context, actor domain.Actor, input ScheduleCreateInput) (*domain.MaintenanceSchedule, error) {
	if input.AssetType == "" || input.AssetID == "" {
		return nil, apperrors.NewValidationError("asset reference required", nil)
	}
	if input.MaintenanceType != domain.TypePreventive && input.MaintenanceType != domain.TypeInspection {
		return nil, apperrors.NewValidationError("schedules support preventive and inspection maintenance only", map[string]any{
			"maintenance_type": input.MaintenanceType,
		})
	}
	switch input.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyQuarterly, domain.FrequencyYearly:
	default:
		return nil, apperrors.NewValidationError("unknown frequency", map[string]any{"frequency": input.Frequency})
	}
	if input.FrequencyValue <= 0 {
		return nil, apperrors.NewValidationError("frequency_value must be positive", nil)
	}
	if input.StartDate.IsZero() {
		return nil, apperrors.NewValidationError("start_date required", nil)
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, apperrors.NewValidationError("end_date before start_date", nil)
	}
	if input.Template.Title == "" {
		return nil, apperrors.NewValidationError("ticket template title required", nil)
	}

	schedule := &domain.MaintenanceSchedule{
		AssetType:         input.AssetType,
		AssetID:           input.AssetID,
		SiteID:            input.SiteID,
		MaintenanceType:   input.MaintenanceType,
		Frequency:         input.Frequency,
		FrequencyValue:    input.FrequencyValue,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		NextScheduledDate: input.StartDate,
		Template:          input.Template,
		IsActive:          true,
		CreatedBy:         actor.ID,
	}
	if schedule.Template.Priority == "" {
		schedule.Template.Priority = domain.PriorityMedium
	}

	if err := s.store.Schedules().Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventScheduleCreated,
		Actor: actor,
		Payload: events.SchedulePayload{
			ScheduleID: schedule.ID,
			SiteID:     schedule.SiteID,
			Frequency:  schedule.Frequency,
		},
	})
	return schedule, nil
}

// Get returns one schedule.
func (s *ScheduleService) Get(ctx context.Context, id string) (*domain.MaintenanceSchedule, error) {
	schedule, err := s.store.Schedules().GetByID(ctx, id)
	if err != nil {
		return nil, mapScheduleErr(err)
	}
	return schedule, nil
}

// ListActive returns active schedules, optionally scoped to a site.
func (s *ScheduleService) ListActive(ctx context.Context, siteID *string) ([]domain.MaintenanceSchedule, error) {
	return s.store.Schedules().ListActive(ctx, siteID)
}

// Deactivate turns a schedule off. Schedules are never deleted so the
// tickets they produced keep their provenance.
func (s *ScheduleService) Deactivate(ctx context.Context, id string, actor domain.Actor) error {
	if err := s.store.Schedules().Deactivate(ctx, id); err != nil {
		return mapScheduleErr(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventScheduleDeactivated,
		Actor:   actor,
		Payload: events.SchedulePayload{ScheduleID: id},
	})
	return nil
}

// AdvanceCursor moves the materialization cursor; called by the
// external job after it promotes a virtual occurrence into a real
// ticket. The cursor may never precede the start date.
func (s *ScheduleService) AdvanceCursor(ctx context.Context, id string, next time.Time) error {
	schedule, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if next.Before(schedule.StartDate) {
		return apperrors.NewValidationError("next_scheduled_date before start_date", nil)
	}
	return mapScheduleErr(s.store.Schedules().AdvanceCursor(ctx, id, next))
}

// Expand materializes the virtual occurrences of one schedule.
func (s *ScheduleService) Expand(schedule domain.MaintenanceSchedule) []domain.VirtualOccurrence {
	return ExpandSchedule(schedule, ExpandOptions{MaxOccurrences: s.maxOccurrences})
}

// Calendar merges persisted tickets and virtual occurrences for a site
// into one date-ordered list. Virtual entries outside [from, to] are
// dropped; persisted tickets are already range-filtered by the store.
func (s *ScheduleService) Calendar(ctx context.Context, siteID string, from, to time.Time) ([]domain.CalendarEntry, error) {
	tickets, err := s.store.Tickets().ListWithFilter(ctx, repository.TicketFilter{
		SiteID:        &siteID,
		ScheduledFrom: &from,
		ScheduledTo:   &to,
		Limit:         500,
	})
	if err != nil {
		return nil, err
	}

	schedules, err := s.store.Schedules().ListActive(ctx, &siteID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CalendarEntry, 0, len(tickets))
	for _, ticket := range tickets {
		entries = append(entries, domain.PersistedEntry{Ticket: ticket})
	}
	for _, schedule := range schedules {
		for _, occurrence := range s.Expand(schedule) {
			if occurrence.ScheduledDate.Before(from) || occurrence.ScheduledDate.After(to) {
				continue
			}
			entries = append(entries, domain.VirtualEntry{Occurrence: occurrence})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate().Before(entries[j].EntryDate())
	})
	return entries, nil
}

func (s *ScheduleService) publishEvent(ctx context.Context, event events.Event) {
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

func mapScheduleErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("maintenance schedule", nil)
	}
	return err
}
