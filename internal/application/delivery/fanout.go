// Package delivery pushes quiz events out over the live session registry,
// one quiz at a time per tab.
package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/domain/push"
	"github.com/quizcast/quizcast/internal/domain/quiz"
	"github.com/quizcast/quizcast/internal/infrastructure/ws"
)

// SessionHub is the connection registry the fanout delivers through.
type SessionHub interface {
	SendToTab(key ws.TabKey, v interface{}) bool
	SendToUser(userID uuid.UUID, v interface{}) int
	TabsForUser(userID uuid.UUID) []ws.TabKey
}

// Fanout drives per-tab delivery. Each tab shows at most one quiz at a
// time, tracked by an in-memory cursor; the durable queue remains the
// source of truth, so cursors can always be rebuilt from it.
type Fanout struct {
	repo    push.Repository
	quizzes quiz.Repository
	hub     SessionHub
	logger  zerolog.Logger

	mu      sync.Mutex
	cursors map[ws.TabKey]uuid.UUID
}

func NewFanout(repo push.Repository, quizzes quiz.Repository, hub SessionHub, logger zerolog.Logger) *Fanout {
	return &Fanout{
		repo:    repo,
		quizzes: quizzes,
		hub:     hub,
		logger:  logger.With().Str("service", "delivery").Logger(),
		cursors: make(map[ws.TabKey]uuid.UUID),
	}
}

// Connected performs catch-up for a freshly authenticated tab: the oldest
// still-active entry for the user is delivered, nothing else. Later
// entries wait until the head resolves.
func (f *Fanout) Connected(ctx context.Context, key ws.TabKey) error {
	f.mu.Lock()
	delete(f.cursors, key)
	f.mu.Unlock()
	return f.advanceTab(ctx, key)
}

// Disconnected drops the tab's cursor. The durable entry keeps its state;
// a reconnect picks it back up.
func (f *Fanout) Disconnected(key ws.TabKey) {
	f.mu.Lock()
	delete(f.cursors, key)
	f.mu.Unlock()
}

// Offer advances every idle tab of the user to the current queue head.
// Called after a dispatch adds new entries; busy tabs are left alone and
// pick the entry up when their current quiz resolves.
func (f *Fanout) Offer(ctx context.Context, userID uuid.UUID) error {
	for _, key := range f.hub.TabsForUser(userID) {
		if err := f.advanceTab(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Resolved broadcasts a terminal outcome for (user, push) to all of the
// user's tabs, frees any tab that was showing that push, and advances the
// freed tabs to the next queued quiz.
func (f *Fanout) Resolved(ctx context.Context, userID, pushID uuid.UUID, outcome push.EntryStatus) {
	evt := EntryEvent{Type: eventType(outcome), PushID: pushID}
	f.hub.SendToUser(userID, evt)

	var freed []ws.TabKey
	f.mu.Lock()
	for key, cur := range f.cursors {
		if key.UserID == userID && cur == pushID {
			delete(f.cursors, key)
			freed = append(freed, key)
		}
	}
	f.mu.Unlock()

	for _, key := range freed {
		if err := f.advanceTab(ctx, key); err != nil {
			f.logger.Error().Err(err).
				Str("user_id", userID.String()).
				Str("tab_id", key.TabID).
				Msg("failed to advance tab after resolution")
		}
	}
}

// advanceTab delivers the user's queue head to the tab if the tab is idle.
// The first delivery of a pending entry flips it to viewing; losing that
// race to another tab is harmless since both show the same head.
func (f *Fanout) advanceTab(ctx context.Context, key ws.TabKey) error {
	f.mu.Lock()
	if _, busy := f.cursors[key]; busy {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	entries, err := f.repo.ListActiveEntriesByUser(ctx, key.UserID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	head := entries[0]

	q, err := f.quizzes.GetByID(ctx, head.QuizID)
	if err != nil {
		return err
	}
	if q == nil {
		return quiz.ErrQuizNotFound
	}

	f.mu.Lock()
	if _, busy := f.cursors[key]; busy {
		f.mu.Unlock()
		return nil
	}
	f.cursors[key] = head.PushID
	f.mu.Unlock()

	if !f.hub.SendToTab(key, ShowNextQuiz{Type: TypeShowNextQuiz, PushID: head.PushID, Quiz: NewQuizPayload(q)}) {
		f.mu.Lock()
		if f.cursors[key] == head.PushID {
			delete(f.cursors, key)
		}
		f.mu.Unlock()
		return nil
	}

	if head.Status == push.EntryPending {
		_, err = f.repo.TransitionEntry(ctx, head.PushID, key.UserID,
			[]push.EntryStatus{push.EntryPending}, push.EntryViewing, time.Now().UTC(), nil)
		if err != nil {
			return err
		}
	}
	return nil
}

func eventType(outcome push.EntryStatus) string {
	switch outcome {
	case push.EntryAnswered:
		return TypeAnswerSubmitted
	case push.EntryUndone:
		return TypeQuizUndone
	case push.EntrySkipped:
		return TypeQuizSkipped
	default:
		return TypeQuizSkipped
	}
}
