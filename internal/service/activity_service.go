package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// ActivityService records who did what. Writes are best-effort: a failed
// audit write is logged and never fails the request that triggered it.
type ActivityService struct {
	logs   repository.ActivityLogRepository
	logger *zap.Logger
}

// NewActivityService builds the service.
func NewActivityService(logs repository.ActivityLogRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{logs: logs, logger: logger}
}

// Record appends an audit entry. No-ops when there is no authenticated user.
func (s *ActivityService) Record(ctx context.Context, userID, action string, entityID *string) {
	if userID == "" {
		return
	}
	entry := &domain.ActivityLog{
		UserID:   userID,
		Action:   action,
		EntityID: entityID,
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to record user activity",
			zap.String("user_id", userID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// ListRecent returns the newest audit entries.
func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	entries, err := s.logs.ListRecent(ctx, limit)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return entries, nil
}
