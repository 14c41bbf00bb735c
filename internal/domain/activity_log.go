package domain

import "time"

// ActivityLog is an append-only record of an authenticated action.
// Entries are never updated or deleted by the application.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	EntityID  *string
	CreatedAt time.Time
}
