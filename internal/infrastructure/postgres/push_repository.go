package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcast/quizcast/internal/domain/push"
)

// PushRepository implements push.Repository.
type PushRepository struct {
	pool *pgxpool.Pool
}

func NewPushRepository(pool *pgxpool.Pool) *PushRepository {
	return &PushRepository{pool: pool}
}

func (r *PushRepository) CreatePush(ctx context.Context, p *push.Push) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pushes (push_id, quiz_id, course_id, target_scope, created_by, created_at, status, undone_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, p.PushID, p.QuizID, p.CourseID, p.TargetScope, p.CreatedBy, p.CreatedAt, p.Status, p.UndoneAt)
	return err
}

func (r *PushRepository) GetPush(ctx context.Context, pushID uuid.UUID) (*push.Push, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, push_id, quiz_id, course_id, target_scope, created_by, created_at, status, undone_at
		FROM pushes WHERE push_id=$1
	`, pushID)
	return scanPush(row)
}

func (r *PushRepository) LatestActivePushByQuiz(ctx context.Context, quizID uuid.UUID) (*push.Push, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, push_id, quiz_id, course_id, target_scope, created_by, created_at, status, undone_at
		FROM pushes WHERE quiz_id=$1 AND status='active'
		ORDER BY created_at DESC LIMIT 1
	`, quizID)
	return scanPush(row)
}

func (r *PushRepository) MarkPushUndone(ctx context.Context, pushID uuid.UUID, at time.Time) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE pushes SET status='undone', undone_at=$2
		WHERE push_id=$1 AND status='active'
	`, pushID, at)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

// CreateEntryIfNoActive is one guarded statement: the insert happens only
// when the user has no pending/viewing entry for the same quiz. Terminal
// entries (answered, skipped, undone) never block a later push.
func (r *PushRepository) CreateEntryIfNoActive(ctx context.Context, e *push.QueueEntry) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO queue_entries (push_id, user_id, quiz_id, status, added_at)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM queue_entries
			WHERE user_id=$2 AND quiz_id=$3 AND status IN ('pending','viewing')
		)
	`, e.PushID, e.UserID, e.QuizID, e.Status, e.AddedAt)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *PushRepository) GetEntry(ctx context.Context, pushID, userID uuid.UUID) (*push.QueueEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, push_id, user_id, quiz_id, status, added_at, viewed_at, answered_at, answer_payload, correct
		FROM queue_entries WHERE push_id=$1 AND user_id=$2
	`, pushID, userID)
	return scanEntry(row)
}

// TransitionEntry performs the shared compare-and-set: a single conditional
// update guarded by the expected statuses. Timestamp and payload columns are
// written per target status.
func (r *PushRepository) TransitionEntry(ctx context.Context, pushID, userID uuid.UUID, from []push.EntryStatus, to push.EntryStatus, at time.Time, answer json.RawMessage) (bool, error) {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE queue_entries
		SET status=$1,
			viewed_at = CASE WHEN $1='viewing' THEN $2 ELSE viewed_at END,
			answered_at = CASE WHEN $1='answered' THEN $2 ELSE answered_at END,
			answer_payload = CASE WHEN $1='answered' THEN $3 ELSE answer_payload END
		WHERE push_id=$4 AND user_id=$5 AND status = ANY($6)
	`, to, at, answer, pushID, userID, fromStrs)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *PushRepository) RecordGrade(ctx context.Context, pushID, userID uuid.UUID, correct bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE queue_entries SET correct=$3
		WHERE push_id=$1 AND user_id=$2 AND status='answered'
	`, pushID, userID, correct)
	return err
}

func (r *PushRepository) ListEntriesByPush(ctx context.Context, pushID uuid.UUID) ([]*push.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, push_id, user_id, quiz_id, status, added_at, viewed_at, answered_at, answer_payload, correct
		FROM queue_entries WHERE push_id=$1 ORDER BY added_at ASC
	`, pushID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PushRepository) ListActiveEntriesByPush(ctx context.Context, pushID uuid.UUID) ([]*push.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, push_id, user_id, quiz_id, status, added_at, viewed_at, answered_at, answer_payload, correct
		FROM queue_entries WHERE push_id=$1 AND status IN ('pending','viewing')
		ORDER BY added_at ASC
	`, pushID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PushRepository) ListActiveEntriesByUser(ctx context.Context, userID uuid.UUID) ([]*push.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, push_id, user_id, quiz_id, status, added_at, viewed_at, answered_at, answer_payload, correct
		FROM queue_entries WHERE user_id=$1 AND status IN ('pending','viewing')
		ORDER BY added_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PushRepository) ListEntriesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*push.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, push_id, user_id, quiz_id, status, added_at, viewed_at, answered_at, answer_payload, correct
		FROM queue_entries WHERE user_id=$1 ORDER BY added_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PushRepository) ListTimedOut(ctx context.Context, now time.Time, limit int) ([]*push.QueueEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.push_id, e.user_id, e.quiz_id, e.status, e.added_at, e.viewed_at, e.answered_at, e.answer_payload, e.correct
		FROM queue_entries e
		JOIN quizzes q ON q.quiz_id = e.quiz_id
		WHERE e.status IN ('pending','viewing')
		AND q.timeout_seconds > 0
		AND COALESCE(e.viewed_at, e.added_at) + (q.timeout_seconds || ' seconds')::interval < $1
		ORDER BY e.added_at ASC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PushRepository) ActivePushSummaries(ctx context.Context, courseID uuid.UUID) ([]*push.Summary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.push_id, p.quiz_id, q.title,
			COUNT(*) FILTER (WHERE e.status='pending'),
			COUNT(*) FILTER (WHERE e.status='viewing'),
			COUNT(*) FILTER (WHERE e.status='answered')
		FROM pushes p
		JOIN quizzes q ON q.quiz_id = p.quiz_id
		JOIN queue_entries e ON e.push_id = p.push_id
		WHERE p.course_id=$1 AND p.status='active'
		GROUP BY p.push_id, p.quiz_id, q.title, p.created_at
		HAVING COUNT(*) FILTER (WHERE e.status IN ('pending','viewing')) > 0
		ORDER BY p.created_at DESC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var summaries []*push.Summary
	for rows.Next() {
		var s push.Summary
		if err := rows.Scan(&s.PushID, &s.QuizID, &s.Title, &s.Pending, &s.Viewing, &s.Answered); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

func scanPush(row pgx.Row) (*push.Push, error) {
	var p push.Push
	if err := row.Scan(&p.ID, &p.PushID, &p.QuizID, &p.CourseID, &p.TargetScope, &p.CreatedBy, &p.CreatedAt, &p.Status, &p.UndoneAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanEntry(row pgx.Row) (*push.QueueEntry, error) {
	var e push.QueueEntry
	var payload json.RawMessage
	if err := row.Scan(&e.ID, &e.PushID, &e.UserID, &e.QuizID, &e.Status, &e.AddedAt, &e.ViewedAt, &e.AnsweredAt, &payload, &e.Correct); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.AnswerPayload = payload
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]*push.QueueEntry, error) {
	var entries []*push.QueueEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
