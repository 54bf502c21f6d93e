package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/assist-dashboard/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Page      *handlers.PageHandler
	Dashboard *handlers.DashboardHandler
	Export    *handlers.ExportHandler
	Charts    *handlers.ChartsHandler
	Health    *handlers.HealthHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Page.Index)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/dashboard", cfg.Dashboard.Render)
	api.Post("/export", cfg.Export.Export)
	api.Post("/charts/status.png", cfg.Charts.StatusDonut)
	api.Post("/charts/timeline.png", cfg.Charts.Timeline)
}
