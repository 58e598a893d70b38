package push

import (
	"errors"
	"fmt"
)

var (
	// ErrPushNotFound indicates no push (or no active push for a quiz id)
	// matched the given identifier.
	ErrPushNotFound = errors.New("push not found")

	// ErrEntryNotFound indicates no queue entry exists for (push, user).
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrNotOwner indicates the acting user does not own the resource.
	ErrNotOwner = errors.New("actor does not own the resource")
)

// InvalidStateError is returned when a conditional transition loses the race:
// the entry had already left the active state. Current carries the observed
// status so callers can tell "already answered" apart from "retracted".
type InvalidStateError struct {
	Current EntryStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("entry is %s, not pending or viewing", e.Current)
}
