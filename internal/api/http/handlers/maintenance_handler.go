package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetops/maintenance-service/internal/api/dto"
	"github.com/fleetops/maintenance-service/internal/auth"
	"github.com/fleetops/maintenance-service/internal/domain"
	"github.com/fleetops/maintenance-service/internal/repository"
	"github.com/fleetops/maintenance-service/internal/service"
	apperrors "github.com/fleetops/maintenance-service/pkg/util"
)

// MaintenanceHandler exposes ticket lifecycle endpoints.
type MaintenanceHandler struct {
	service *service.MaintenanceService
	audit   *service.AuditRecorder
}

// NewMaintenanceHandler constructs handler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService, audit *service.AuditRecorder) *MaintenanceHandler {
	return &MaintenanceHandler{service: maintenanceService, audit: audit}
}

// Create POST /maintenance.
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), actor, service.MaintenanceCreateInput{
		Title:               req.Title,
		Description:         req.Description,
		MaintenanceType:     domain.MaintenanceType(req.MaintenanceType),
		Priority:            domain.MaintenancePriority(req.Priority),
		AssetType:           domain.AssetType(req.AssetType),
		AssetID:             req.AssetID,
		SiteID:              req.SiteID,
		ScheduledDate:       req.ScheduledDate,
		EstimatedCost:       req.EstimatedCost,
		CostCurrency:        req.CostCurrency,
		IsUrgent:            req.IsUrgent,
		ClientVisible:       req.ClientVisible,
		AssignedTo:          req.AssignedTo,
		OriginatingTicketID: req.OriginatingTicketID,
		IsRecurring:         req.IsRecurring,
		RecurringScheduleID: req.RecurringScheduleID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// List GET /maintenance.
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.MaintenanceTicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /maintenance/:id.
func (h *MaintenanceHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.GetDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": detailResponse(detail)})
}

// Update PATCH /maintenance/:id.
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.MaintenanceUpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		CostCurrency:  req.CostCurrency,
		IsUrgent:      req.IsUrgent,
		ClientVisible: req.ClientVisible,
		AssignedTo:    req.AssignedTo,
	}
	if req.Priority != nil {
		priority := domain.MaintenancePriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := domain.MaintenanceStatus(*req.Status)
		input.Status = &status
	}

	ticket, err := h.service.Update(c.UserContext(), c.Params("id"), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Approve POST /maintenance/:id/approve.
func (h *MaintenanceHandler) Approve(c *fiber.Ctx) error {
	return h.runTransition(c, h.service.Approve)
}

// StartWork POST /maintenance/:id/start.
func (h *MaintenanceHandler) StartWork(c *fiber.Ctx) error {
	return h.runTransition(c, h.service.StartWork)
}

// ReportAwaitingParts POST /maintenance/:id/awaiting-parts.
func (h *MaintenanceHandler) ReportAwaitingParts(c *fiber.Ctx) error {
	return h.runTransition(c, h.service.ReportAwaitingParts)
}

// ResumeWork POST /maintenance/:id/resume.
func (h *MaintenanceHandler) ResumeWork(c *fiber.Ctx) error {
	return h.runTransition(c, h.service.ResumeWork)
}

// Close POST /maintenance/:id/close.
func (h *MaintenanceHandler) Close(c *fiber.Ctx) error {
	return h.runTransition(c, h.service.Close)
}

// CompleteWork POST /maintenance/:id/complete.
func (h *MaintenanceHandler) CompleteWork(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.CompleteWorkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CompleteWork(c.UserContext(), c.Params("id"), actor, req.WorkPerformed, req.LaborHours)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Verify POST /maintenance/:id/verify.
func (h *MaintenanceHandler) Verify(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Verify(c.UserContext(), c.Params("id"), actor, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Assign POST /maintenance/:id/assign.
func (h *MaintenanceHandler) Assign(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Assign(c.UserContext(), c.Params("id"), actor, req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AddComment POST /maintenance/:id/comments.
func (h *MaintenanceHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.UserContext(), c.Params("id"), actor, req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(*comment)})
}

// AddAttachment POST /maintenance/:id/attachments.
func (h *MaintenanceHandler) AddAttachment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.AttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	attachment, err := h.service.AddAttachment(c.UserContext(), c.Params("id"), actor, domain.MaintenanceAttachment{
		StorageKey: req.StorageKey,
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": attachmentResponse(*attachment)})
}

// AddPart POST /maintenance/:id/parts.
func (h *MaintenanceHandler) AddPart(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	var req dto.PartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AddPart(c.UserContext(), c.Params("id"), actor, domain.PartUsed{
		PartName:   req.PartName,
		Quantity:   req.Quantity,
		PartNumber: req.PartNumber,
		Cost:       req.Cost,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AuditTrail GET /maintenance/:id/audit. Defaults to oldest first;
// order=desc flips to newest first for summary views.
func (h *MaintenanceHandler) AuditTrail(c *fiber.Ctx) error {
	if _, err := h.service.Get(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	order := repository.OrderOldestFirst
	if c.Query("order") == "desc" {
		order = repository.OrderNewestFirst
	}
	events, err := h.audit.ListFor(c.UserContext(), c.Params("id"), order)
	if err != nil {
		return err
	}
	items := make([]dto.AuditEventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, dto.AuditEventResponse{
			ID:              event.ID,
			EventType:       string(event.EventType),
			Description:     event.Description,
			PerformedBy:     event.PerformedBy,
			PerformedByRole: event.PerformedByRole,
			PreviousValue:   event.PreviousValue,
			NewValue:        event.NewValue,
			Metadata:        event.Metadata,
			CreatedAt:       event.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *MaintenanceHandler) runTransition(c *fiber.Ctx, op func(ctx context.Context, id string, actor domain.Actor) (*domain.MaintenanceTicket, error)) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("actor required")
	}
	ticket, err := op(c.UserContext(), c.Params("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if siteID := c.Query("site_id"); siteID != "" {
		filter.SiteID = &siteID
	}
	if assetType := c.Query("asset_type"); assetType != "" {
		at := domain.AssetType(assetType)
		filter.AssetType = &at
	}
	if assetID := c.Query("asset_id"); assetID != "" {
		filter.AssetID = &assetID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.MaintenanceStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.MaintenancePriority(strings.TrimSpace(part)))
		}
	}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.MaintenanceType(strings.TrimSpace(part)))
		}
	}
	if from := parseTime(c.Query("scheduled_from")); from != nil {
		filter.ScheduledFrom = from
	}
	if to := parseTime(c.Query("scheduled_to")); to != nil {
		filter.ScheduledTo = to
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}
	return filter
}

func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil
		}
	}
	return &parsed
}

func ticketResponse(t *domain.MaintenanceTicket) dto.MaintenanceTicketResponse {
	parts := make([]dto.PartRequest, 0, len(t.PartsUsed))
	for _, part := range t.PartsUsed {
		parts = append(parts, dto.PartRequest{
			PartName:   part.PartName,
			Quantity:   part.Quantity,
			PartNumber: part.PartNumber,
			Cost:       part.Cost,
		})
	}
	return dto.MaintenanceTicketResponse{
		ID:                  t.ID,
		TicketNumber:        t.TicketNumber,
		Title:               t.Title,
		Description:         t.Description,
		MaintenanceType:     string(t.MaintenanceType),
		Priority:            string(t.Priority),
		AssetType:           string(t.AssetType),
		AssetID:             t.AssetID,
		SiteID:              t.SiteID,
		Status:              string(t.Status),
		ScheduledDate:       t.ScheduledDate,
		ApprovedBy:          t.ApprovedBy,
		ApprovedAt:          t.ApprovedAt,
		WorkStartedAt:       t.WorkStartedAt,
		WorkCompletedAt:     t.WorkCompletedAt,
		WorkPerformed:       t.WorkPerformed,
		LaborHours:          t.LaborHours,
		PartsUsed:           parts,
		VerifiedBy:          t.VerifiedBy,
		VerifiedAt:          t.VerifiedAt,
		VerificationNotes:   t.VerificationNotes,
		ClosedAt:            t.ClosedAt,
		EstimatedCost:       t.EstimatedCost,
		ActualCost:          t.ActualCost,
		CostCurrency:        t.CostCurrency,
		IsUrgent:            t.IsUrgent,
		IsRecurring:         t.IsRecurring,
		RecurringScheduleID: t.RecurringScheduleID,
		ClientVisible:       t.ClientVisible,
		OriginatingTicketID: t.OriginatingTicketID,
		CreatedBy:           t.CreatedBy,
		CreatedByRole:       t.CreatedByRole,
		AssignedTo:          t.AssignedTo,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func detailResponse(detail *service.MaintenanceDetail) dto.MaintenanceDetailResponse {
	trail := make([]dto.AuditEventResponse, 0, len(detail.AuditTrail))
	for _, event := range detail.AuditTrail {
		trail = append(trail, dto.AuditEventResponse{
			ID:              event.ID,
			EventType:       string(event.EventType),
			Description:     event.Description,
			PerformedBy:     event.PerformedBy,
			PerformedByRole: event.PerformedByRole,
			PreviousValue:   event.PreviousValue,
			NewValue:        event.NewValue,
			Metadata:        event.Metadata,
			CreatedAt:       event.CreatedAt,
		})
	}
	comments := make([]dto.CommentResponse, 0, len(detail.Comments))
	for _, comment := range detail.Comments {
		comments = append(comments, commentResponse(comment))
	}
	attachments := make([]dto.AttachmentResponse, 0, len(detail.Attachments))
	for _, attachment := range detail.Attachments {
		attachments = append(attachments, attachmentResponse(attachment))
	}
	return dto.MaintenanceDetailResponse{
		Ticket:           ticketResponse(&detail.Ticket),
		AssetDisplayName: detail.AssetDisplayName,
		AuditTrail:       trail,
		Comments:         comments,
		Attachments:      attachments,
	}
}

func commentResponse(comment domain.MaintenanceComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		Body:       comment.Body,
		AuthorID:   comment.AuthorID,
		AuthorRole: comment.AuthorRole,
		CreatedAt:  comment.CreatedAt,
	}
}

func attachmentResponse(attachment domain.MaintenanceAttachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:         attachment.ID,
		StorageKey: attachment.StorageKey,
		FileName:   attachment.FileName,
		MimeType:   attachment.MimeType,
		SizeBytes:  attachment.SizeBytes,
		UploadedBy: attachment.UploadedBy,
		CreatedAt:  attachment.CreatedAt,
	}
}
