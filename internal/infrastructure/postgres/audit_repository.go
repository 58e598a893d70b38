package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcast/quizcast/internal/domain/audit"
)

// AuditRepository implements audit.Repository.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Create(ctx context.Context, log *audit.Log) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (audit_id, entity_type, entity_id, action, actor, reason, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, log.AuditID, log.EntityType, log.EntityID, log.Action, log.Actor, log.Reason, log.CreatedAt)
	return err
}

func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]*audit.Log, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, audit_id, entity_type, entity_id, action, actor, reason, created_at
		FROM audit_log ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var logs []*audit.Log
	for rows.Next() {
		var l audit.Log
		if err := rows.Scan(&l.ID, &l.AuditID, &l.EntityType, &l.EntityID, &l.Action, &l.Actor, &l.Reason, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
