package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestActivityRecordSkipsAnonymous(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, zap.NewNop())

	svc.Record(context.Background(), "", "GET /tickets", nil)

	assert.Equal(t, 0, repo.count())
}

func TestActivityRecordAppendsEntry(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, zap.NewNop())

	entityID := "ticket-1"
	svc.Record(context.Background(), "user-1", "PATCH /tickets/ticket-1", &entityID)

	entries, err := svc.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user-1", entries[0].UserID)
	assert.Equal(t, "PATCH /tickets/ticket-1", entries[0].Action)
	require.NotNil(t, entries[0].EntityID)
	assert.Equal(t, "ticket-1", *entries[0].EntityID)
}

func TestActivityRecordSwallowsSinkFailures(t *testing.T) {
	repo := newFakeActivityRepo()
	repo.failing = true
	svc := NewActivityService(repo, zap.NewNop())

	// Must not panic or surface the error.
	svc.Record(context.Background(), "user-1", "DELETE /tickets/ticket-1", nil)

	assert.Equal(t, 0, repo.count())
}

func TestActivityListRecentHonorsLimit(t *testing.T) {
	repo := newFakeActivityRepo()
	svc := NewActivityService(repo, zap.NewNop())

	for _, action := range []string{"a", "b", "c"} {
		svc.Record(context.Background(), "user-1", action, nil)
	}

	entries, err := svc.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Action)
	assert.Equal(t, "b", entries[1].Action)
}
