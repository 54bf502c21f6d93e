package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/assist-dashboard/internal/web"
	apperrors "github.com/spec-kit/assist-dashboard/pkg/util"
)

// PageHandler serves the embedded dashboard page.
type PageHandler struct {
	data web.PageData
}

// NewPageHandler constructs handler.
func NewPageHandler(serviceName, version string, refreshSeconds int) *PageHandler {
	return &PageHandler{data: web.PageData{
		ServiceName:    serviceName,
		Version:        version,
		RefreshSeconds: refreshSeconds,
	}}
}

// Index GET /.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := web.RenderIndex(&buf, h.data); err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
