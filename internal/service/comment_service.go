package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const agentFirstMessage = "ticket not found or a support agent must comment before a customer can"

// CommentService coordinates the comment workflow. Creation is guarded:
// a ticket must have an assigned support agent before comments attach.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, dispatcher: dispatcher}
}

// Create attaches a comment to a ticket. Fails when the ticket is missing or
// no support agent has engaged yet; no comment record is written in either
// case.
func (s *CommentService) Create(ctx context.Context, ticketID, userID, text string) (*domain.Comment, error) {
	details := map[string]any{}
	if strings.TrimSpace(text) == "" {
		details["text"] = "Text is required and must be a string."
	}
	if strings.TrimSpace(ticketID) == "" {
		details["ticket"] = "Ticket ID is required and must be a string."
	}
	if strings.TrimSpace(userID) == "" {
		details["user"] = "User ID is required and must be a string."
	}
	if len(details) > 0 {
		return nil, errorutil.NewValidationError("invalid comment", details)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewDomainError("NOT_FOUND", agentFirstMessage, http.StatusNotFound, nil)
		}
		return nil, errorutil.MapError(err)
	}
	if ticket.SupportAgentID == nil {
		return nil, errorutil.NewDomainError("NOT_FOUND", agentFirstMessage, http.StatusNotFound, nil)
	}

	comment := &domain.Comment{
		Text:     strings.TrimSpace(text),
		TicketID: ticketID,
		UserID:   userID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errorutil.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticketID,
		ActorID:  userID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			UserID:      userID,
			TextPreview: textPreview(comment.Text, 80),
		},
	})
	return comment, nil
}

// Update changes a comment's text. Only the author may update.
func (s *CommentService) Update(ctx context.Context, id, callerID, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errorutil.NewValidationError("invalid comment", map[string]any{
			"text": "Text is required and must be a string.",
		})
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("comment", map[string]any{"comment_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	if comment.UserID != callerID {
		return nil, errorutil.NewForbidden("only the author can update this comment")
	}

	comment.Text = strings.TrimSpace(text)
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, errorutil.MapError(err)
	}
	return comment, nil
}

// Delete removes a comment. Admin gating happens at the route.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewNotFound("comment", map[string]any{"comment_id": id})
		}
		return errorutil.MapError(err)
	}
	return nil
}

// ListByTicket returns a ticket's comments in creation order.
func (s *CommentService) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return comments, nil
}

// ListAll returns every comment in creation order.
func (s *CommentService) ListAll(ctx context.Context) ([]domain.Comment, error) {
	comments, err := s.comments.ListAll(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return comments, nil
}

func (s *CommentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func textPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
