// Package undo retracts a dispatched push and its still-active queue
// entries.
package undo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/audit"
	"github.com/quizcast/quizcast/internal/domain/push"
)

// Notifier fans a terminal entry outcome out to the user's live tabs.
type Notifier interface {
	Resolved(ctx context.Context, userID, pushID uuid.UUID, outcome push.EntryStatus)
}

// Auditor records controlling-actor operations.
type Auditor interface {
	Record(entityType audit.EntityType, entityID string, action audit.Action, actor, reason string)
}

// Service coordinates push retraction. Undo is idempotent: the push flip
// happens at most once, and each entry retraction races fairly against
// in-flight answers.
type Service struct {
	pushes   push.Repository
	notifier Notifier
	auditor  Auditor
	logger   zerolog.Logger
}

func NewService(pushes push.Repository, notifier Notifier, auditor Auditor, logger zerolog.Logger) *Service {
	return &Service{
		pushes:   pushes,
		notifier: notifier,
		auditor:  auditor,
		logger:   logger.With().Str("service", "undo").Logger(),
	}
}

// Result reports what an undo did.
type Result struct {
	Push          *push.Push
	AlreadyUndone bool
	Retracted     []uuid.UUID
}

// Undo retracts the push named by identifier. The identifier is a push id
// first; when no push matches, it is treated as a quiz id and the latest
// active push of that quiz is targeted. Only the push creator may undo.
// Repeating an undo reports AlreadyUndone without side effects. Entries
// already answered stay answered.
func (s *Service) Undo(ctx context.Context, identifier uuid.UUID, requestedBy uuid.UUID) (*Result, error) {
	p, err := s.pushes.GetPush(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = s.pushes.LatestActivePushByQuiz(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, push.ErrPushNotFound
	}
	if p.CreatedBy != requestedBy {
		return nil, push.ErrNotOwner
	}

	now := time.Now().UTC()
	flipped, err := s.pushes.MarkPushUndone(ctx, p.PushID, now)
	if err != nil {
		return nil, err
	}
	if !flipped {
		p.Status = push.StatusUndone
		return &Result{Push: p, AlreadyUndone: true, Retracted: []uuid.UUID{}}, nil
	}
	p.Status = push.StatusUndone
	p.UndoneAt = &now

	entries, err := s.pushes.ListActiveEntriesByPush(ctx, p.PushID)
	if err != nil {
		return nil, err
	}

	result := &Result{Push: p, Retracted: []uuid.UUID{}}
	for _, e := range entries {
		applied, err := s.pushes.TransitionEntry(ctx, p.PushID, e.UserID, push.ActiveStatuses(), push.EntryUndone, now, nil)
		if err != nil {
			s.logger.Error().Err(err).
				Str("push_id", p.PushID.String()).
				Str("user_id", e.UserID.String()).
				Msg("failed to retract entry")
			continue
		}
		if !applied {
			// Lost to an answer that landed mid-undo; the answer stands.
			continue
		}
		result.Retracted = append(result.Retracted, e.UserID)
		s.notifier.Resolved(ctx, e.UserID, p.PushID, push.EntryUndone)
	}

	if s.auditor != nil {
		s.auditor.Record(audit.EntityTypePush, p.PushID.String(), audit.ActionUndo, requestedBy.String(), "")
	}

	s.logger.Info().
		Str("push_id", p.PushID.String()).
		Int("retracted", len(result.Retracted)).
		Msg("push undone")
	return result, nil
}
