package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifies a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	deps map[string]Pinger
}

// NewHealthHandler constructs handler.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true
	for name, dep := range h.deps {
		if dep == nil {
			checks[name] = "skipped"
			continue
		}
		if err := dep.Ping(c.Context()); err != nil {
			checks[name] = "unreachable"
			healthy = false
			continue
		}
		checks[name] = "ok"
	}
	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}
