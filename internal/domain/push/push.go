package push

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TargetScope selects which enrolled users a push is addressed to.
type TargetScope string

const (
	ScopeAll        TargetScope = "all"
	ScopeGroup      TargetScope = "group"
	ScopeIndividual TargetScope = "individual"
)

// ParseScope validates a scope keyword.
func ParseScope(s string) (TargetScope, error) {
	switch TargetScope(s) {
	case ScopeAll, ScopeGroup, ScopeIndividual:
		return TargetScope(s), nil
	default:
		return "", errors.New("invalid target scope")
	}
}

// Status represents push status.
type Status string

const (
	StatusActive Status = "active"
	StatusUndone Status = "undone"
)

// EntryStatus represents the lifecycle state of a queue entry.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryViewing  EntryStatus = "viewing"
	EntryAnswered EntryStatus = "answered"
	EntrySkipped  EntryStatus = "skipped"
	EntryUndone   EntryStatus = "undone"
)

// IsTerminal reports whether no further transitions are allowed.
func (s EntryStatus) IsTerminal() bool {
	switch s {
	case EntryAnswered, EntrySkipped, EntryUndone:
		return true
	default:
		return false
	}
}

// ActiveStatuses is the set of states that block re-dispatch of the same
// quiz to the same user and that answer/undo/timeout race over.
func ActiveStatuses() []EntryStatus {
	return []EntryStatus{EntryPending, EntryViewing}
}

// CanTransition validates an entry status transition.
func CanTransition(from, to EntryStatus) bool {
	transitions := map[EntryStatus][]EntryStatus{
		EntryPending:  {EntryViewing, EntryAnswered, EntrySkipped, EntryUndone},
		EntryViewing:  {EntryAnswered, EntrySkipped, EntryUndone},
		EntryAnswered: {},
		EntrySkipped:  {},
		EntryUndone:   {},
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Push represents one teacher-initiated broadcast of a quiz to a resolved
// recipient set. Status moves active->undone exactly once and never reverts.
type Push struct {
	ID          int64       `json:"id"`
	PushID      uuid.UUID   `json:"pushId"`
	QuizID      uuid.UUID   `json:"quizId"`
	CourseID    uuid.UUID   `json:"courseId"`
	TargetScope TargetScope `json:"targetScope"`
	CreatedBy   uuid.UUID   `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	Status      Status      `json:"status"`
	UndoneAt    *time.Time  `json:"undoneAt,omitempty"`
}

// QueueEntry is the per-recipient delivery record for one push. Exactly one
// entry exists per (push, user); rows are never deleted.
type QueueEntry struct {
	ID            int64           `json:"id"`
	PushID        uuid.UUID       `json:"pushId"`
	UserID        uuid.UUID       `json:"userId"`
	QuizID        uuid.UUID       `json:"quizId"`
	Status        EntryStatus     `json:"status"`
	AddedAt       time.Time       `json:"addedAt"`
	ViewedAt      *time.Time      `json:"viewedAt,omitempty"`
	AnsweredAt    *time.Time      `json:"answeredAt,omitempty"`
	AnswerPayload json.RawMessage `json:"answerPayload,omitempty"`
	Correct       *bool           `json:"correct,omitempty"`
}

// Summary is a dashboard rollup for one active push.
type Summary struct {
	PushID   uuid.UUID `json:"push_id"`
	QuizID   uuid.UUID `json:"quiz_id"`
	Title    string    `json:"title"`
	Pending  int       `json:"pending_count"`
	Viewing  int       `json:"viewing_count"`
	Answered int       `json:"answered_count"`
}
