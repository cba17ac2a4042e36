package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-workflow/internal/api/http"
	"github.com/spec-kit/support-workflow/internal/api/http/handlers"
	"github.com/spec-kit/support-workflow/internal/auth"
	"github.com/spec-kit/support-workflow/internal/capability"
	"github.com/spec-kit/support-workflow/internal/config"
	"github.com/spec-kit/support-workflow/internal/events"
	"github.com/spec-kit/support-workflow/internal/observability"
	"github.com/spec-kit/support-workflow/internal/persistence"
	"github.com/spec-kit/support-workflow/internal/repository"
	"github.com/spec-kit/support-workflow/internal/service"
	"github.com/spec-kit/support-workflow/internal/worker"
	"github.com/spec-kit/support-workflow/internal/workflow"
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

	descriptor, err := config.LoadWorkflowDescriptor(cfg.Workflow.DescriptorPath)
	if err != nil {
		logger.Fatal("failed to load workflow descriptor", zap.Error(err))
	}
	if err := workflow.ValidateDescriptor(descriptor); err != nil {
		logger.Fatal("workflow descriptor mismatch", zap.Error(err))
	}
	logger.Info("workflow descriptor loaded",
		zap.String("name", descriptor.Name),
		zap.Int("stages", len(descriptor.Stages)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pipeline := workflow.New(workflow.Providers{
		Common:   capability.NewCommonProvider(logger),
		External: capability.NewExternalProvider(logger),
		State:    capability.NewStateProvider(logger),
	}, logger, metrics)

	var runRepo repository.RunRepository
	if pool := pg.PoolHandle(); pool != nil {
		runRepo = repository.NewRunRepository(pool)
	}

	workflowService := service.NewWorkflowService(cfg.Workflow, service.WorkflowDependencies{
		Pipeline:   pipeline,
		RunRepo:    runRepo,
		Cache:      redis,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService, err := service.NewAuthService(*cfg, logger)
	if err != nil {
		logger.Fatal("failed to init auth", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Runs:           handlers.NewRunsHandler(workflowService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
