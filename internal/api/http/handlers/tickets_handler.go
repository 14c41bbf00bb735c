package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const reportDateLayout = "2006-01-02"

// TicketsHandler exposes the ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	comment *service.CommentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, comments *service.CommentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, comment: comments}
}

// Create handles POST /tickets. The customer is the authenticated caller.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}

	var req dto.TicketCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.Create(c.Context(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		CustomerID:  principal.User.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.TicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	input := service.TicketUpdateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		input.Status = &status
	}

	ticket, err := h.tickets.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := repository.TicketFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.TicketStatus{domain.TicketStatus(status)}
	}

	tickets, err := h.tickets.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketListResponse(tickets)})
}

// Delete handles DELETE /tickets/:id. Admin-only at the route.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if err := h.tickets.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ticket deleted successfully"})
}

// Assign handles POST /tickets/:id/assign. Customers are excluded at the route.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.TicketAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.AssignToAgent(c.Context(), c.Params("id"), req.SupportAgent)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Comments handles GET /tickets/:id/comment.
func (h *TicketsHandler) Comments(c *fiber.Ctx) error {
	comments, err := h.comment.ListByTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentListResponse(comments)})
}

// ClosedReport handles GET /tickets/reports/closed?startDate&endDate.
// Admin-only at the route; the CSV artifact is offered as a download.
func (h *TicketsHandler) ClosedReport(c *fiber.Ctx) error {
	startRaw := c.Query("startDate")
	endRaw := c.Query("endDate")
	if startRaw == "" || endRaw == "" {
		return errorutil.NewValidationError("start date and end date are required", nil)
	}

	start, err := time.Parse(reportDateLayout, startRaw)
	if err != nil {
		return errorutil.NewValidationError("invalid date format, expected YYYY-MM-DD", map[string]any{"startDate": startRaw})
	}
	end, err := time.Parse(reportDateLayout, endRaw)
	if err != nil {
		return errorutil.NewValidationError("invalid date format, expected YYYY-MM-DD", map[string]any{"endDate": endRaw})
	}
	// Make the end bound cover the whole end day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	path, err := h.tickets.GenerateClosedTicketsReport(c.Context(), start, end)
	if err != nil {
		return err
	}
	return c.Download(path)
}
