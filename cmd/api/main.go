package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fleetops/maintenance-service/internal/api/http"
	"github.com/fleetops/maintenance-service/internal/api/http/handlers"
	"github.com/fleetops/maintenance-service/internal/auth"
	"github.com/fleetops/maintenance-service/internal/config"
	"github.com/fleetops/maintenance-service/internal/events"
	"github.com/fleetops/maintenance-service/internal/observability"
	"github.com/fleetops/maintenance-service/internal/persistence"
	"github.com/fleetops/maintenance-service/internal/repository"
	"github.com/fleetops/maintenance-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	store := repository.NewStore(pool)
	assets := repository.NewCachedAssetDirectory(
		repository.NewAssetDirectory(pool), redis.Client, cfg.Schedule.AssetCacheTTL)
	issues := repository.NewIssueTicketCloser(pool)

	dispatcher := events.NewInMemoryDispatcher()
	registerEventLogging(dispatcher, logger)

	sequence := service.NewSequenceAllocator(store, logger)
	maintenanceService := service.NewMaintenanceService(service.MaintenanceDependencies{
		Store:      store,
		Sequence:   sequence,
		Assets:     assets,
		Issues:     issues,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	scheduleService := service.NewScheduleService(store, dispatcher, logger, cfg.Schedule.MaxOccurrences)
	auditRecorder := service.NewAuditRecorder(store)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pool),
		Maintenance:    handlers.NewMaintenanceHandler(maintenanceService, auditRecorder),
		Schedules:      handlers.NewScheduleHandler(scheduleService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func registerEventLogging(dispatcher events.Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event events.Event) error {
		logger.Info("domain event",
			zap.String("type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.String("actor_id", event.Actor.ID),
		)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventMaintenanceCreated,
		events.EventMaintenanceStatusChanged,
		events.EventMaintenanceAssigned,
		events.EventMaintenanceCompleted,
		events.EventMaintenanceVerified,
		events.EventScheduleCreated,
		events.EventScheduleDeactivated,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
