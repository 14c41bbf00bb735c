package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketCreateRequest payload for filing tickets.
type TicketCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TicketUpdateRequest payload. Absent fields are left unchanged.
type TicketUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TicketAssignRequest payload for assignment.
type TicketAssignRequest struct {
	SupportAgent string `json:"supportAgent"`
}

// TicketResponse is the wire view of a ticket.
type TicketResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Customer     string    `json:"customer"`
	SupportAgent *string   `json:"supportAgent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Status:       string(ticket.Status),
		Customer:     ticket.CustomerID,
		SupportAgent: ticket.SupportAgentID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
