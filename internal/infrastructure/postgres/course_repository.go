package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizcast/quizcast/internal/domain/course"
	"github.com/quizcast/quizcast/internal/domain/push"
)

// CourseRepository implements course.Repository and course.Roster over the
// enrollments table.
type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) GetByID(ctx context.Context, courseID uuid.UUID) (*course.Course, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, course_id, name, teacher_id, created_at
		FROM courses WHERE course_id=$1
	`, courseID)
	var c course.Course
	if err := row.Scan(&c.ID, &c.CourseID, &c.Name, &c.TeacherID, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Resolve evaluates the recipient set fresh from enrollments. An empty
// result is returned as an empty slice, never an error.
func (r *CourseRepository) Resolve(ctx context.Context, courseID uuid.UUID, scope push.TargetScope, target string) ([]uuid.UUID, error) {
	switch scope {
	case push.ScopeAll:
		return r.queryUserIDs(ctx, `
			SELECT e.user_id FROM enrollments e
			JOIN users u ON u.user_id = e.user_id
			WHERE e.course_id=$1 AND u.status='ACTIVE'
			ORDER BY e.added_at ASC
		`, courseID)
	case push.ScopeGroup:
		return r.queryUserIDs(ctx, `
			SELECT e.user_id FROM enrollments e
			JOIN users u ON u.user_id = e.user_id
			WHERE e.course_id=$1 AND e.group_name=$2 AND u.status='ACTIVE'
			ORDER BY e.added_at ASC
		`, courseID, target)
	case push.ScopeIndividual:
		userID, err := uuid.Parse(target)
		if err != nil {
			return []uuid.UUID{}, nil
		}
		return r.queryUserIDs(ctx, `
			SELECT e.user_id FROM enrollments e
			JOIN users u ON u.user_id = e.user_id
			WHERE e.course_id=$1 AND e.user_id=$2 AND u.status='ACTIVE'
		`, courseID, userID)
	default:
		return []uuid.UUID{}, nil
	}
}

func (r *CourseRepository) queryUserIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
