package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/assist-dashboard/internal/api/http"
	"github.com/spec-kit/assist-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/assist-dashboard/internal/config"
	"github.com/spec-kit/assist-dashboard/internal/events"
	"github.com/spec-kit/assist-dashboard/internal/ingest"
	"github.com/spec-kit/assist-dashboard/internal/observability"
	"github.com/spec-kit/assist-dashboard/internal/service"
	"github.com/spec-kit/assist-dashboard/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	loader := ingest.NewLoader(cfg.Dashboard.CacheTTL(), dispatcher, logger)
	dashboardService := service.NewDashboardService(dispatcher, logger)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Dashboard.MaxUploadBytes()) + (1 << 20),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Page:      handlers.NewPageHandler(cfg.App.Name, cfg.App.Version, cfg.Dashboard.RefreshSeconds),
		Dashboard: handlers.NewDashboardHandler(loader, dashboardService, cfg.Dashboard),
		Export:    handlers.NewExportHandler(loader, dashboardService, cfg.Dashboard),
		Charts:    handlers.NewChartsHandler(loader, dashboardService, cfg.Dashboard),
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, loader, metrics),
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
