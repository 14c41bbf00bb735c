package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
)

const maxActivityPageSize = 200

// ActivityHandler exposes the audit log. Read-only; entries are written by
// the activity middleware, never through the API.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List handles GET /activity. Admin-only at the route.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > maxActivityPageSize {
		limit = maxActivityPageSize
	}

	entries, err := h.activity.ListRecent(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewActivityLogListResponse(entries)})
}
