package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	reportDir  string
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	ReportDir  string
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	CustomerID  string
}

// TicketUpdateInput carries the fields a PATCH may merge. Nil means
// "leave unchanged".
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		reportDir:  deps.ReportDir,
	}
}

// Create files a new ticket with status Open.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "Title is required and must be a string."
	}
	if strings.TrimSpace(input.Description) == "" {
		details["description"] = "Description is required and must be a string."
	}
	if strings.TrimSpace(input.CustomerID) == "" {
		details["customer"] = "Customer ID is required and must be a string."
	}
	if len(details) > 0 {
		return nil, errorutil.NewValidationError("invalid ticket", details)
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		CustomerID:  input.CustomerID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, errorutil.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  ticket.CustomerID,
		Payload: events.TicketCreatedPayload{
			CustomerID: ticket.CustomerID,
			Title:      ticket.Title,
		},
	})
	return ticket, nil
}

// Get fetches a ticket by id.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return ticket, nil
}

// List returns tickets matching the filter.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return tickets, nil
}

// Update merges the supplied fields into an existing ticket.
func (s *TicketService) Update(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, errorutil.MapError(err)
	}

	oldStatus := ticket.Status
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if !domain.ValidTicketStatus(*input.Status) {
			return nil, errorutil.NewValidationError("invalid ticket status", map[string]any{"status": *input.Status})
		}
		ticket.Status = *input.Status
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, errorutil.MapError(err)
	}

	if ticket.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// Delete removes a ticket. Admin gating happens at the route.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return errorutil.MapError(err)
	}
	return nil
}

// AssignToAgent sets the support agent on a ticket. An Open ticket advances
// to In Progress; any other status is left untouched.
func (s *TicketService) AssignToAgent(ctx context.Context, ticketID, agentID string) (*domain.Ticket, error) {
	if strings.TrimSpace(agentID) == "" {
		return nil, errorutil.NewValidationError("support agent id is required", map[string]any{
			"supportAgent": "Support agent ID is required and must be a string.",
		})
	}

	if _, err := s.users.GetByID(ctx, agentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("support agent", map[string]any{"agent_id": agentID})
		}
		return nil, errorutil.MapError(err)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, errorutil.MapError(err)
	}

	if ticket.Status == domain.TicketStatusOpen {
		ticket.Status = domain.TicketStatusInProgress
	}
	ticket.SupportAgentID = &agentID

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, errorutil.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  agentID,
		Payload: events.TicketAssignedPayload{
			SupportAgentID: agentID,
			Status:         ticket.Status,
		},
	})
	return ticket, nil
}

// ClosedInRange returns Closed tickets last updated within [start, end].
func (s *TicketService) ClosedInRange(ctx context.Context, start, end time.Time) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ClosedBetween(ctx, start, end)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return tickets, nil
}

// GenerateClosedTicketsReport streams the closed tickets in the range to a
// CSV file and returns its path. The artifact stays on disk for download.
func (s *TicketService) GenerateClosedTicketsReport(ctx context.Context, start, end time.Time) (string, error) {
	tickets, err := s.ClosedInRange(ctx, start, end)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportDir, 0o755); err != nil {
		return "", errorutil.MapError(err)
	}
	path := filepath.Join(s.reportDir, fmt.Sprintf("closed-tickets-%s-%s.csv",
		start.Format("20060102"), end.Format("20060102")))

	file, err := os.Create(path)
	if err != nil {
		return "", errorutil.MapError(err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"title", "description", "status", "customer", "supportAgent", "createdAt", "updatedAt"}); err != nil {
		return "", errorutil.MapError(err)
	}

	usernames := map[string]string{}
	for _, ticket := range tickets {
		agent := ""
		if ticket.SupportAgentID != nil {
			agent = s.username(ctx, usernames, *ticket.SupportAgentID)
		}
		row := []string{
			ticket.Title,
			ticket.Description,
			string(ticket.Status),
			s.username(ctx, usernames, ticket.CustomerID),
			agent,
			ticket.CreatedAt.Format(time.RFC3339),
			ticket.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return "", errorutil.MapError(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errorutil.MapError(err)
	}
	return path, nil
}

// username resolves a user id to its username, falling back to the raw id
// when the user is gone. Lookups are memoized per report.
func (s *TicketService) username(ctx context.Context, cache map[string]string, id string) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := id
	if user, err := s.users.GetByID(ctx, id); err == nil {
		name = user.Username
	}
	cache[id] = name
	return name
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
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
