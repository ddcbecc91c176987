package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetops/maintenance-service/internal/api/dto"
	"github.com/fleetops/maintenance-service/internal/auth"
	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/service"
	apperrors "github.com/fleetops/maintenance-service/pkg/util"
)

// ScheduleHandler exposes recurrence definition and calendar endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: scheduleService}
}

// Create POST /schedules.
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	schedule, err := h.service.Create(c.UserContext(), actor, service.ScheduleCreateInput{
		AssetType:       domain.AssetType(req.AssetType),
		AssetID:         req.AssetID,
		SiteID:          req.SiteID,
		MaintenanceType: domain.MaintenanceType(req.MaintenanceType),
		Frequency:       domain.ScheduleFrequency(req.Frequency),
		FrequencyValue:  req.FrequencyValue,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Template: domain.TicketTemplate{
			Title:             req.Template.Title,
			Description:       req.Template.Description,
			Priority:          domain.MaintenancePriority(req.Template.Priority),
			EstimatedDuration: req.Template.EstimatedDuration,
			AssignedTo:        req.Template.AssignedTo,
		},
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": scheduleResponse(schedule)})
}

// List GET /schedules.
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	var siteID *string
	if site := c.Query("site_id"); site != "" {
		siteID = &site
	}
	schedules, err := h.service.ListActive(c.UserContext(), siteID)
	if err != nil {
		return err
	}
	items := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		items = append(items, scheduleResponse(&schedules[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /schedules/:id.
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	schedule, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": scheduleResponse(schedule)})
}

// Deactivate POST /schedules/:id/deactivate.
func (h *ScheduleHandler) Deactivate(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	if err := h.service.Deactivate(c.UserContext(), c.Params("id"), actor); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdvanceCursor POST /schedules/:id/advance.
func (h *ScheduleHandler) AdvanceCursor(c *fiber.Ctx) error {
	var req dto.AdvanceCursorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NextScheduledDate.IsZero() {
		return apperrors.NewValidationError("next_scheduled_date required", nil)
	}
	if err := h.service.AdvanceCursor(c.UserContext(), c.Params("id"), req.NextScheduledDate); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Calendar GET /calendar.
func (h *ScheduleHandler) Calendar(c *fiber.Ctx) error {
	siteID := c.Query("site_id")
	if siteID == "" {
		return apperrors.NewValidationError("site_id required", nil)
	}
	from := parseTime(c.Query("from"))
	to := parseTime(c.Query("to"))
	if from == nil || to == nil {
		return apperrors.NewValidationError("from and to required (RFC3339 or YYYY-MM-DD)", nil)
	}

	entries, err := h.service.Calendar(c.UserContext(), siteID, *from, *to)
	if err != nil {
		return err
	}

	items := make([]dto.CalendarEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, calendarEntryResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

func calendarEntryResponse(entry domain.CalendarEntry) dto.CalendarEntryResponse {
	switch e := entry.(type) {
	case domain.PersistedEntry:
		ticket := ticketResponse(&e.Ticket)
		return dto.CalendarEntryResponse{
			Kind:   "ticket",
			Date:   e.EntryDate(),
			Ticket: &ticket,
		}
	case domain.VirtualEntry:
		occurrence := occurrenceResponse(e.Occurrence)
		return dto.CalendarEntryResponse{
			Kind:       "virtual",
			Date:       e.EntryDate(),
			Occurrence: &occurrence,
		}
	default:
		return dto.CalendarEntryResponse{Kind: "unknown", Date: entry.EntryDate()}
	}
}

func occurrenceResponse(o domain.VirtualOccurrence) dto.VirtualOccurrenceResponse {
	return dto.VirtualOccurrenceResponse{
		ID:                o.ID,
		ScheduleID:        o.ScheduleID,
		TicketNumber:      o.TicketNumber,
		Title:             o.Title,
		Description:       o.Description,
		MaintenanceType:   string(o.MaintenanceType),
		Priority:          string(o.Priority),
		AssetType:         string(o.AssetType),
		AssetID:           o.AssetID,
		SiteID:            o.SiteID,
		Status:            string(o.Status),
		ScheduledDate:     o.ScheduledDate,
		EstimatedDuration: o.EstimatedDuration,
		AssignedTo:        o.AssignedTo,
		IsRecurring:       true,
	}
}

func scheduleResponse(s *domain.MaintenanceSchedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:                s.ID,
		AssetType:         string(s.AssetType),
		AssetID:           s.AssetID,
		SiteID:            s.SiteID,
		MaintenanceType:   string(s.MaintenanceType),
		Frequency:         string(s.Frequency),
		FrequencyValue:    s.FrequencyValue,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		NextScheduledDate: s.NextScheduledDate,
		Template: dto.TicketTemplateDTO{
			Title:             s.Template.Title,
			Description:       s.Template.Description,
			Priority:          string(s.Template.Priority),
			EstimatedDuration: s.Template.EstimatedDuration,
			AssignedTo:        s.Template.AssignedTo,
		},
		IsActive:  s.IsActive,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
