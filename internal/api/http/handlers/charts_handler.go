package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/assist-dashboard/internal/config"
	"github.com/spec-kit/assist-dashboard/internal/ingest"
	"github.com/spec-kit/assist-dashboard/internal/render"
	"github.com/spec-kit/assist-dashboard/internal/service"
)

// ChartsHandler renders downloadable PNG charts for the current upload
// and filter selection.
type ChartsHandler struct {
	loader  *ingest.Loader
	service *service.DashboardService
	cfg     config.DashboardConfig
}

// NewChartsHandler constructs handler.
func NewChartsHandler(loader *ingest.Loader, dashboardService *service.DashboardService, cfg config.DashboardConfig) *ChartsHandler {
	return &ChartsHandler{loader: loader, service: dashboardService, cfg: cfg}
}

// StatusDonut POST /api/charts/status.png.
func (h *ChartsHandler) StatusDonut(c *fiber.Ctx) error {
	result, err := h.buildResult(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.StatusDonutPNG(result.StatusCounts, &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

// Timeline POST /api/charts/timeline.png.
func (h *ChartsHandler) Timeline(c *fiber.Ctx) error {
	result, err := h.buildResult(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.TimelinePNG(result.TemporalCounts, &buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

func (h *ChartsHandler) buildResult(c *fiber.Ctx) (*service.DashboardResult, error) {
	table, _, err := tableFromRequest(c, h.loader, h.cfg.MaxUploadBytes())
	if err != nil {
		return nil, err
	}
	return h.service.Build(c.UserContext(), table, selectionFromForm(c))
}
