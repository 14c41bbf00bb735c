package domain

import "time"

// Comment is a message attached to a ticket thread.
type Comment struct {
	ID        string
	Text      string
	TicketID  string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
