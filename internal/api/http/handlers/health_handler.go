package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/assist-dashboard/internal/ingest"
	"github.com/spec-kit/assist-dashboard/internal/observability"
)

// HealthHandler responds to liveness and readiness probes and exposes
// the in-memory counters.
type HealthHandler struct {
	serviceName string
	version     string
	loader      *ingest.Loader
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, loader *ingest.Loader, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, loader: loader, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. There are no external dependencies;
// the payload carries the parse-cache occupancy for operators.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "ready",
		"cached_tables": h.loader.CachedTables(),
	})
}

// Metrics GET /metrics.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
