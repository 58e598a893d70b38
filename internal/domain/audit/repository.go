package audit

import "context"

// Repository defines audit log persistence.
type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, limit, offset int) ([]*Log, error)
}
