package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ValidTicketStatus reports whether s is one of the defined states.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CustomerID is the filing
// user; SupportAgentID is set once an agent engages, which also advances an
// Open ticket to In Progress.
type Ticket struct {
	ID             string
	Title          string
	Description    string
	Status         TicketStatus
	CustomerID     string
	SupportAgentID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
