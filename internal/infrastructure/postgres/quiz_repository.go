package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcast/quizcast/internal/domain/quiz"
)

// QuizRepository implements quiz.Repository.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

func (r *QuizRepository) GetByID(ctx context.Context, quizID uuid.UUID) (*quiz.Quiz, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, quiz_id, course_id, owner_id, title, question_type, options, answer_key, answer_rule, timeout_seconds, created_at
		FROM quizzes WHERE quiz_id=$1
	`, quizID)
	return scanQuiz(row)
}

func (r *QuizRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*quiz.Quiz, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, quiz_id, course_id, owner_id, title, question_type, options, answer_key, answer_rule, timeout_seconds, created_at
		FROM quizzes WHERE course_id=$1 ORDER BY created_at DESC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var quizzes []*quiz.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func scanQuiz(row pgx.Row) (*quiz.Quiz, error) {
	var q quiz.Quiz
	var options json.RawMessage
	if err := row.Scan(&q.ID, &q.QuizID, &q.CourseID, &q.OwnerID, &q.Title, &q.QuestionType, &options, &q.AnswerKey, &q.AnswerRule, &q.TimeoutSeconds, &q.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, err
		}
	}
	return &q, nil
}
