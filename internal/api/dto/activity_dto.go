package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// ActivityLogResponse is the API shape of an audit entry.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	EntityID  *string   `json:"entityId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewActivityLogListResponse maps audit entries to responses.
func NewActivityLogListResponse(entries []domain.ActivityLog) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ActivityLogResponse{
			ID:        entries[i].ID,
			UserID:    entries[i].UserID,
			Action:    entries[i].Action,
			EntityID:  entries[i].EntityID,
			CreatedAt: entries[i].CreatedAt,
		})
	}
	return out
}
