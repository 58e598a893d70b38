package course

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository,Roster

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizcast/quizcast/internal/domain/push"
)

// Repository defines course read access.
type Repository interface {
	GetByID(ctx context.Context, courseID uuid.UUID) (*Course, error)
}

// Roster resolves the eligible recipient set for a dispatch. Evaluated
// fresh every time, never cached. target qualifies group (group name) and
// individual (user id) scopes and is empty for scope all. An empty result
// is not an error.
type Roster interface {
	Resolve(ctx context.Context, courseID uuid.UUID, scope push.TargetScope, target string) ([]uuid.UUID, error)
}
