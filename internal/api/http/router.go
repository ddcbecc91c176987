package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetops/maintenance-service/internal/api/http/handlers"
	"github.com/fleetops/maintenance-service/internal/auth"
	"github.com/fleetops/maintenance-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Maintenance    *handlers.MaintenanceHandler
	Schedules      *handlers.ScheduleHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	maintenance := api.Group("/maintenance")
	maintenance.Post("", cfg.Maintenance.Create)
	maintenance.Get("", cfg.Maintenance.List)
	maintenance.Get("/:id", cfg.Maintenance.Get)
	maintenance.Get("/:id/audit", cfg.Maintenance.AuditTrail)
	maintenance.Patch("/:id", cfg.Maintenance.Update)
	maintenance.Post("/:id/approve", auth.RequireRole(domain.RoleAdmin), cfg.Maintenance.Approve)
	maintenance.Post("/:id/start", cfg.Maintenance.StartWork)
	maintenance.Post("/:id/awaiting-parts", cfg.Maintenance.ReportAwaitingParts)
	maintenance.Post("/:id/resume", cfg.Maintenance.ResumeWork)
	maintenance.Post("/:id/complete", cfg.Maintenance.CompleteWork)
	maintenance.Post("/:id/verify", auth.RequireRole(domain.RoleAdmin), cfg.Maintenance.Verify)
	maintenance.Post("/:id/close", cfg.Maintenance.Close)
	maintenance.Post("/:id/assign", cfg.Maintenance.Assign)
	maintenance.Post("/:id/comments", cfg.Maintenance.AddComment)
	maintenance.Post("/:id/attachments", cfg.Maintenance.AddAttachment)
	maintenance.Post("/:id/parts", cfg.Maintenance.AddPart)

	schedules := api.Group("/schedules")
	schedules.Post("", cfg.Schedules.Create)
	schedules.Get("", cfg.Schedules.List)
	schedules.Get("/:id", cfg.Schedules.Get)
	schedules.Post("/:id/deactivate", cfg.Schedules.Deactivate)
	schedules.Post("/:id/advance", cfg.Schedules.AdvanceCursor)

	api.Get("/calendar", cfg.Schedules.Calendar)
}
