// Package status serves dashboard rollups and per-user history reads.
package status

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/push"
)

const defaultHistoryLimit = 100

// Service answers read-only queries over the durable queue.
type Service struct {
	pushes push.Repository
	logger zerolog.Logger
}

func NewService(pushes push.Repository, logger zerolog.Logger) *Service {
	return &Service{
		pushes: pushes,
		logger: logger.With().Str("service", "status").Logger(),
	}
}

// QueueStatus returns per-push counts for the course's active pushes that
// still have unanswered recipients. Computed from the queue on demand.
func (s *Service) QueueStatus(ctx context.Context, courseID uuid.UUID) ([]*push.Summary, error) {
	summaries, err := s.pushes.ActivePushSummaries(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []*push.Summary{}
	}
	return summaries, nil
}

// History returns the user's queue entries, newest first, terminal and
// active alike.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]*push.QueueEntry, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	entries, err := s.pushes.ListEntriesByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*push.QueueEntry{}
	}
	return entries, nil
}
