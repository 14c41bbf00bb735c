package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

type commentFixture struct {
	comments   *CommentService
	tickets    *TicketService
	commentsDB *fakeCommentRepo
	users      *fakeUserRepo
	dispatcher *recordingDispatcher
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	ticketRepo := newFakeTicketRepo()
	commentRepo := newFakeCommentRepo()
	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	return &commentFixture{
		comments:   NewCommentService(commentRepo, ticketRepo, dispatcher),
		tickets: NewTicketService(TicketDependencies{
			TicketRepo: ticketRepo,
			UserRepo:   users,
			Dispatcher: dispatcher,
			ReportDir:  t.TempDir(),
		}),
		commentsDB: commentRepo,
		users:      users,
		dispatcher: dispatcher,
	}
}

func (f *commentFixture) assignedTicket(t *testing.T) (*domain.Ticket, *domain.User, *domain.User) {
	t.Helper()
	customer := createUser(t, f.users, "customer")
	agent := createUser(t, f.users, "agent")
	ticket := createTicket(t, f.tickets, customer.ID)
	assigned, err := f.tickets.AssignToAgent(context.Background(), ticket.ID, agent.ID)
	require.NoError(t, err)
	return assigned, customer, agent
}

func TestCommentCreateRequiresAssignedAgent(t *testing.T) {
	f := newCommentFixture(t)
	customer := createUser(t, f.users, "customer")
	ticket := createTicket(t, f.tickets, customer.ID)

	_, err := f.comments.Create(context.Background(), ticket.ID, customer.ID, "any update?")

	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, 0, f.commentsDB.count())
}

func TestCommentCreateMissingTicketSameFailure(t *testing.T) {
	f := newCommentFixture(t)
	customer := createUser(t, f.users, "customer")
	ticket := createTicket(t, f.tickets, customer.ID)

	_, unassignedErr := f.comments.Create(context.Background(), ticket.ID, customer.ID, "hello")
	_, missingErr := f.comments.Create(context.Background(), "ticket-missing", customer.ID, "hello")

	// Missing tickets and unassigned tickets are indistinguishable to callers.
	var de1, de2 *errorutil.DomainError
	require.ErrorAs(t, unassignedErr, &de1)
	require.ErrorAs(t, missingErr, &de2)
	assert.Equal(t, de1.Message, de2.Message)
	assert.Equal(t, de1.HTTPStatus, de2.HTTPStatus)
}

func TestCommentCreateAfterAssignment(t *testing.T) {
	f := newCommentFixture(t)
	ticket, customer, agent := f.assignedTicket(t)

	agentComment, err := f.comments.Create(context.Background(), ticket.ID, agent.ID, "on it")
	require.NoError(t, err)
	customerComment, err := f.comments.Create(context.Background(), ticket.ID, customer.ID, "thanks!")
	require.NoError(t, err)

	assert.NotEmpty(t, agentComment.ID)
	assert.NotEmpty(t, customerComment.ID)
	assert.Len(t, f.dispatcher.byType(events.EventCommentAdded), 2)

	listed, err := f.comments.ListByTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "on it", listed[0].Text)
	assert.Equal(t, "thanks!", listed[1].Text)
}

func TestCommentCreateAggregatesValidationErrors(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.comments.Create(context.Background(), "", "", "  ")

	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "text")
	assert.Contains(t, domainErr.Details, "ticket")
	assert.Contains(t, domainErr.Details, "user")
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	f := newCommentFixture(t)
	ticket, customer, agent := f.assignedTicket(t)

	comment, err := f.comments.Create(context.Background(), ticket.ID, agent.ID, "looking into it")
	require.NoError(t, err)

	_, err = f.comments.Update(context.Background(), comment.ID, customer.ID, "hijacked")
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)

	updated, err := f.comments.Update(context.Background(), comment.ID, agent.ID, "resolved upstream")
	require.NoError(t, err)
	assert.Equal(t, "resolved upstream", updated.Text)
}

func TestCommentUpdateNotFound(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.comments.Update(context.Background(), "comment-missing", "user-1", "text")

	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestCommentDelete(t *testing.T) {
	f := newCommentFixture(t)
	ticket, _, agent := f.assignedTicket(t)

	comment, err := f.comments.Create(context.Background(), ticket.ID, agent.ID, "temp note")
	require.NoError(t, err)

	require.NoError(t, f.comments.Delete(context.Background(), comment.ID))
	assert.Equal(t, 0, f.commentsDB.count())

	err = f.comments.Delete(context.Background(), comment.ID)
	var domainErr *errorutil.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}
