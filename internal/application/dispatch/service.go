// Package dispatch creates pushes and fans queue entries out to the
// resolved recipient set.
package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/audit"
	"github.com/quizcast/quizcast/internal/domain/course"
	"github.com/quizcast/quizcast/internal/domain/push"
	"github.com/quizcast/quizcast/internal/domain/quiz"
)

// Deliverer nudges the live delivery layer after new entries are queued.
type Deliverer interface {
	Offer(ctx context.Context, userID uuid.UUID) error
}

// Auditor records controlling-actor operations. Implementations are
// fire-and-forget.
type Auditor interface {
	Record(entityType audit.EntityType, entityID string, action audit.Action, actor, reason string)
}

// Service handles quiz dispatch.
type Service struct {
	pushes    push.Repository
	quizzes   quiz.Repository
	courses   course.Repository
	roster    course.Roster
	deliverer Deliverer
	auditor   Auditor
	logger    zerolog.Logger
}

func NewService(pushes push.Repository, quizzes quiz.Repository, courses course.Repository, roster course.Roster, deliverer Deliverer, auditor Auditor, logger zerolog.Logger) *Service {
	return &Service{
		pushes:    pushes,
		quizzes:   quizzes,
		courses:   courses,
		roster:    roster,
		deliverer: deliverer,
		auditor:   auditor,
		logger:    logger.With().Str("service", "dispatch").Logger(),
	}
}

// Result reports the per-recipient outcome of a dispatch.
type Result struct {
	Push    *push.Push
	Added   []uuid.UUID
	Skipped []uuid.UUID
}

// Dispatch creates a push of quizID to the course recipients selected by
// scope/target. Recipients already holding an active entry for the same
// quiz are skipped; terminal entries never block. A failure queuing one
// recipient counts that recipient as skipped and never aborts the batch,
// so Added+Skipped always equals the resolved target set.
func (s *Service) Dispatch(ctx context.Context, quizID, courseID uuid.UUID, scope push.TargetScope, target string, requestedBy uuid.UUID) (*Result, error) {
	q, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, quiz.ErrQuizNotFound
	}

	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, course.ErrCourseNotFound
	}
	if requestedBy != q.OwnerID && requestedBy != c.TeacherID {
		return nil, push.ErrNotOwner
	}

	now := time.Now().UTC()
	p := &push.Push{
		PushID:      uuid.New(),
		QuizID:      quizID,
		CourseID:    courseID,
		TargetScope: scope,
		CreatedBy:   requestedBy,
		CreatedAt:   now,
		Status:      push.StatusActive,
	}
	if err := s.pushes.CreatePush(ctx, p); err != nil {
		return nil, err
	}

	recipients, err := s.roster.Resolve(ctx, courseID, scope, target)
	if err != nil {
		return nil, err
	}

	result := &Result{Push: p, Added: []uuid.UUID{}, Skipped: []uuid.UUID{}}
	for _, userID := range recipients {
		inserted, err := s.pushes.CreateEntryIfNoActive(ctx, &push.QueueEntry{
			PushID:  p.PushID,
			UserID:  userID,
			QuizID:  quizID,
			Status:  push.EntryPending,
			AddedAt: now,
		})
		if err != nil {
			s.logger.Error().Err(err).
				Str("push_id", p.PushID.String()).
				Str("user_id", userID.String()).
				Msg("failed to queue entry for recipient")
			result.Skipped = append(result.Skipped, userID)
			continue
		}
		if inserted {
			result.Added = append(result.Added, userID)
		} else {
			result.Skipped = append(result.Skipped, userID)
		}
	}

	for _, userID := range result.Added {
		if err := s.deliverer.Offer(ctx, userID); err != nil {
			s.logger.Error().Err(err).
				Str("push_id", p.PushID.String()).
				Str("user_id", userID.String()).
				Msg("live delivery offer failed")
		}
	}

	if s.auditor != nil {
		s.auditor.Record(audit.EntityTypePush, p.PushID.String(), audit.ActionDispatch, requestedBy.String(), "")
	}

	s.logger.Info().
		Str("push_id", p.PushID.String()).
		Str("quiz_id", quizID.String()).
		Str("scope", string(scope)).
		Int("added", len(result.Added)).
		Int("skipped", len(result.Skipped)).
		Msg("quiz dispatched")
	return result, nil
}
