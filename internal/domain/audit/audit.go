package audit

import (
	"time"

	"github.com/google/uuid"
)

// EntityType identifies what an audit entry is about.
type EntityType string

const (
	EntityTypePush EntityType = "PUSH"
	EntityTypeUser EntityType = "USER"
)

// Action identifies what happened.
type Action string

const (
	ActionDispatch Action = "DISPATCH"
	ActionUndo     Action = "UNDO"
	ActionLogin    Action = "LOGIN"
	ActionLogout   Action = "LOGOUT"
)

// Log is an append-only record of a controlling-actor operation.
type Log struct {
	ID         int64      `json:"id"`
	AuditID    uuid.UUID  `json:"auditId"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Action     Action     `json:"action"`
	Actor      string     `json:"actor"`
	Reason     string     `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
