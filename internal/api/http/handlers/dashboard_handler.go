package handlers

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/assist-dashboard/internal/config"
	"github.com/spec-kit/assist-dashboard/internal/domain"
	"github.com/spec-kit/assist-dashboard/internal/ingest"
	"github.com/spec-kit/assist-dashboard/internal/service"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

// DashboardHandler serves the full dashboard payload for one upload plus
// filter selection.
type DashboardHandler struct {
	loader  *ingest.Loader
	service *service.DashboardService
	cfg     config.DashboardConfig
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(loader *ingest.Loader, dashboardService *service.DashboardService, cfg config.DashboardConfig) *DashboardHandler {
	return &DashboardHandler{loader: loader, service: dashboardService, cfg: cfg}
}

// Render POST /api/dashboard.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	table, sourceName, err := tableFromRequest(c, h.loader, h.cfg.MaxUploadBytes())
	if err != nil {
		return err
	}
	selection := selectionFromForm(c)
	result, err := h.service.Build(c.UserContext(), table, selection)
	if err != nil {
		return err
	}
	visible := formValues(c, "columns")
	return c.JSON(buildDashboardResponse(result, sourceName, h.cfg.RefreshSeconds, visible))
}

// tableFromRequest reads the uploaded file part and runs it through the
// loader. Shared by the dashboard, export and chart handlers.
func tableFromRequest(c *fiber.Ctx, loader *ingest.Loader, maxBytes int64) (domain.Table, string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return domain.Table{}, "", apperrors.NewValidationError("missing file upload field \"file\"", nil)
	}
	if header.Size > maxBytes {
		return domain.Table{}, "", apperrors.NewValidationError("uploaded file is too large", map[string]any{
			"max_bytes": maxBytes,
		})
	}
	data, err := readFilePart(header)
	if err != nil {
		return domain.Table{}, "", apperrors.NewLoadError("could not read the uploaded file", err)
	}
	table, err := loader.Load(c.UserContext(), header.Filename, data)
	if err != nil {
		return domain.Table{}, "", err
	}
	return table, header.Filename, nil
}

func readFilePart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// selectionFromForm rebuilds the filter selection from the request. When
// neither an all-flag nor explicit values arrive for a dimension, the
// whole universe is selected; an explicit all=false with no values is an
// empty selection and filters to zero rows.
func selectionFromForm(c *fiber.Ctx) domain.FilterSelection {
	statuses := formValues(c, "status")
	departments := formValues(c, "department")
	return domain.FilterSelection{
		Statuses:       statuses,
		AllStatuses:    allFlag(c, "all_status", len(statuses) == 0),
		Departments:    departments,
		AllDepartments: allFlag(c, "all_departments", len(departments) == 0),
		Period:         domain.ParsePeriod(c.FormValue("period")),
		Query:          c.FormValue("q"),
	}
}

func allFlag(c *fiber.Ctx, field string, fallback bool) bool {
	value := c.FormValue(field)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func formValues(c *fiber.Ctx, field string) []string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.Value[field]
}
