package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/audit"
)

// Service handles audit log operations.
type Service struct {
	repo   audit.Repository
	logger zerolog.Logger
}

// NewService creates an audit service.
func NewService(repo audit.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "audit").Logger(),
	}
}

// Record creates an audit log entry asynchronously. Audit failures are
// logged and never surface to the caller.
func (s *Service) Record(entityType audit.EntityType, entityID string, action audit.Action, actor, reason string) {
	entry := &audit.Log{
		AuditID:    uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, entry); err != nil {
			s.logger.Error().Err(err).
				Str("entity_type", string(entry.EntityType)).
				Str("entity_id", entry.EntityID).
				Str("action", string(entry.Action)).
				Msg("failed to create audit log")
		}
	}()
}

// List returns audit entries, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*audit.Log, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
