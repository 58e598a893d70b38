package quiz

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines quiz read access.
type Repository interface {
	GetByID(ctx context.Context, quizID uuid.UUID) (*Quiz, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Quiz, error)
}
