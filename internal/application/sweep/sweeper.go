// Package sweep expires queue entries whose quiz timeout has elapsed.
package sweep

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/push"
)

const batchSize = 200

// Notifier fans a terminal entry outcome out to the user's live tabs.
type Notifier interface {
	Resolved(ctx context.Context, userID, pushID uuid.UUID, outcome push.EntryStatus)
}

// Sweeper periodically marks overdue entries as skipped. Each expiry is a
// conditional transition, so a sweep racing an answer loses cleanly.
type Sweeper struct {
	pushes   push.Repository
	notifier Notifier
	logger   zerolog.Logger
}

func NewSweeper(pushes push.Repository, notifier Notifier, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		pushes:   pushes,
		notifier: notifier,
		logger:   logger.With().Str("service", "sweep").Logger(),
	}
}

// Sweep expires one batch of overdue entries and returns how many it
// skipped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	overdue, err := s.pushes.ListTimedOut(ctx, now, batchSize)
	if err != nil {
		return 0, err
	}

	skipped := 0
	for _, e := range overdue {
		applied, err := s.pushes.TransitionEntry(ctx, e.PushID, e.UserID, push.ActiveStatuses(), push.EntrySkipped, now, nil)
		if err != nil {
			s.logger.Error().Err(err).
				Str("push_id", e.PushID.String()).
				Str("user_id", e.UserID.String()).
				Msg("failed to expire entry")
			continue
		}
		if !applied {
			continue
		}
		skipped++
		s.notifier.Resolved(ctx, e.UserID, e.PushID, push.EntrySkipped)
	}

	if skipped > 0 {
		s.logger.Info().Int("skipped", skipped).Msg("expired overdue entries")
	}
	return skipped, nil
}

// Run sweeps on the given interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error().Err(err).Msg("sweep failed")
			}
		}
	}
}
