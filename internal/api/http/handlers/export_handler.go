package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/assist-dashboard/internal/config"
	"github.com/spec-kit/assist-dashboard/internal/ingest"
	"github.com/spec-kit/assist-dashboard/internal/service"
)

// ExportHandler streams the filtered table as a CSV download.
type ExportHandler struct {
	loader  *ingest.Loader
	service *service.DashboardService
	cfg     config.DashboardConfig
}

// NewExportHandler constructs handler.
func NewExportHandler(loader *ingest.Loader, dashboardService *service.DashboardService, cfg config.DashboardConfig) *ExportHandler {
	return &ExportHandler{loader: loader, service: dashboardService, cfg: cfg}
}

// Export POST /api/export.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	table, _, err := tableFromRequest(c, h.loader, h.cfg.MaxUploadBytes())
	if err != nil {
		return err
	}
	selection := selectionFromForm(c)
	result, err := h.service.Build(c.UserContext(), table, selection)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	filename, err := h.service.ExportCSV(c.UserContext(), result, &buf)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
