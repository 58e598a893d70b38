// Package answer handles quiz answer submission.
package answer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/push"
	"github.com/quizcast/quizcast/internal/domain/quiz"
)

// Notifier fans a terminal entry outcome out to the user's live tabs.
type Notifier interface {
	Resolved(ctx context.Context, userID, pushID uuid.UUID, outcome push.EntryStatus)
}

// Grader scores an answer payload against the quiz.
type Grader interface {
	Grade(q *quiz.Quiz, payload json.RawMessage) (bool, error)
}

// Service accepts answers. The accept path is a single conditional
// transition, so concurrent submissions, retractions and timeouts settle
// on exactly one winner.
type Service struct {
	pushes   push.Repository
	quizzes  quiz.Repository
	grader   Grader
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(pushes push.Repository, quizzes quiz.Repository, grader Grader, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		pushes:   pushes,
		quizzes:  quizzes,
		grader:   grader,
		notifier: notifier,
		logger:   logger.With().Str("service", "answer").Logger(),
	}
}

// Submit records the user's answer for the push. Returns ErrEntryNotFound
// when the user was never a recipient, or InvalidStateError carrying the
// observed status when the entry already left the active state. Grading
// happens after the answer is durable; a grading failure never fails the
// submission.
func (s *Service) Submit(ctx context.Context, pushID, userID uuid.UUID, payload json.RawMessage) error {
	now := time.Now().UTC()
	applied, err := s.pushes.TransitionEntry(ctx, pushID, userID, push.ActiveStatuses(), push.EntryAnswered, now, payload)
	if err != nil {
		return err
	}
	if !applied {
		e, err := s.pushes.GetEntry(ctx, pushID, userID)
		if err != nil {
			return err
		}
		if e == nil {
			return push.ErrEntryNotFound
		}
		return &push.InvalidStateError{Current: e.Status}
	}

	s.notifier.Resolved(ctx, userID, pushID, push.EntryAnswered)
	s.grade(ctx, pushID, userID, payload)
	return nil
}

func (s *Service) grade(ctx context.Context, pushID, userID uuid.UUID, payload json.RawMessage) {
	e, err := s.pushes.GetEntry(ctx, pushID, userID)
	if err != nil || e == nil {
		s.logger.Error().Err(err).Str("push_id", pushID.String()).Msg("grading: entry lookup failed")
		return
	}
	q, err := s.quizzes.GetByID(ctx, e.QuizID)
	if err != nil || q == nil {
		s.logger.Error().Err(err).Str("quiz_id", e.QuizID.String()).Msg("grading: quiz lookup failed")
		return
	}
	correct, err := s.grader.Grade(q, payload)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("push_id", pushID.String()).
			Str("user_id", userID.String()).
			Msg("answer not gradable")
		return
	}
	if err := s.pushes.RecordGrade(ctx, pushID, userID, correct); err != nil {
		s.logger.Error().Err(err).Str("push_id", pushID.String()).Msg("failed to record grade")
	}
}
