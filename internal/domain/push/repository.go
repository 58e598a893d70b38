package push

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Repository defines push and queue-entry persistence. All entry mutation
// goes through the conditional single-row primitives; there are no
// read-then-write update paths.
type Repository interface {
	CreatePush(ctx context.Context, p *Push) error
	GetPush(ctx context.Context, pushID uuid.UUID) (*Push, error)
	LatestActivePushByQuiz(ctx context.Context, quizID uuid.UUID) (*Push, error)
	// MarkPushUndone flips active->undone. Returns false when the push was
	// already undone.
	MarkPushUndone(ctx context.Context, pushID uuid.UUID, at time.Time) (bool, error)

	// CreateEntryIfNoActive inserts the entry unless the user already has a
	// pending or viewing entry for the same quiz. Terminal entries never
	// block. Returns whether the insert happened.
	CreateEntryIfNoActive(ctx context.Context, e *QueueEntry) (bool, error)
	GetEntry(ctx context.Context, pushID, userID uuid.UUID) (*QueueEntry, error)
	// TransitionEntry is the atomic compare-and-set primitive shared by
	// answer, undo, viewing and the timeout sweep: a single conditional
	// update guarded by the expected current statuses. Returns whether the
	// transition applied. The answer payload is stored only for
	// EntryAnswered; timestamps are set per target status.
	TransitionEntry(ctx context.Context, pushID, userID uuid.UUID, from []EntryStatus, to EntryStatus, at time.Time, answer json.RawMessage) (bool, error)
	// RecordGrade stores the grading outcome on an answered entry.
	RecordGrade(ctx context.Context, pushID, userID uuid.UUID, correct bool) error

	ListEntriesByPush(ctx context.Context, pushID uuid.UUID) ([]*QueueEntry, error)
	ListActiveEntriesByPush(ctx context.Context, pushID uuid.UUID) ([]*QueueEntry, error)
	// ListActiveEntriesByUser returns the user's pending/viewing entries,
	// oldest added_at first. Catch-up delivery order.
	ListActiveEntriesByUser(ctx context.Context, userID uuid.UUID) ([]*QueueEntry, error)
	ListEntriesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*QueueEntry, error)
	// ListTimedOut returns active entries whose quiz timeout has elapsed
	// since viewed_at (or added_at when never viewed).
	ListTimedOut(ctx context.Context, now time.Time, limit int) ([]*QueueEntry, error)
	// ActivePushSummaries rolls up active pushes of a course that still have
	// at least one pending/viewing entry.
	ActivePushSummaries(ctx context.Context, courseID uuid.UUID) ([]*Summary, error)
}
