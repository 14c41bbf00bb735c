package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CommentCreateRequest payload. The author is the authenticated caller.
type CommentCreateRequest struct {
	Text   string `json:"text"`
	Ticket string `json:"ticket"`
}

// CommentUpdateRequest payload.
type CommentUpdateRequest struct {
	Text string `json:"text"`
}

// CommentResponse is the wire view of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Ticket    string    `json:"ticket"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Ticket:    comment.TicketID,
		User:      comment.UserID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// NewCommentListResponse maps a slice of comments.
func NewCommentListResponse(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
