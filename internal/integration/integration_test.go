//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/quizcast/quizcast/internal/application/answer"
	"github.com/quizcast/quizcast/internal/application/dispatch"
	"github.com/quizcast/quizcast/internal/application/status"
	"github.com/quizcast/quizcast/internal/application/undo"
	"github.com/quizcast/quizcast/internal/domain/push"
	"github.com/quizcast/quizcast/internal/grading"
	"github.com/quizcast/quizcast/internal/infrastructure/postgres"
)

type nopDeliverer struct{}

func (nopDeliverer) Offer(context.Context, uuid.UUID) error { return nil }

type nopNotifier struct{}

func (nopNotifier) Resolved(context.Context, uuid.UUID, uuid.UUID, push.EntryStatus) {}

type harness struct {
	pool     *pgxpool.Pool
	pushes   *postgres.PushRepository
	dispatch *dispatch.Service
	answer   *answer.Service
	undo     *undo.Service
	status   *status.Service
}

// TestDispatchBlockedUntilEntriesTerminal drives one push through all three
// terminal outcomes against a real database: an active entry makes a second
// dispatch of the same quiz skip the recipient, and once every entry is
// answered, skipped or undone a re-dispatch reaches the full roster again.
func TestDispatchBlockedUntilEntriesTerminal(t *testing.T) {
	h, cleanup := newHarness(t)
	defer cleanup()
	ctx := context.Background()

	teacherID, courseID, quizID, students := seedClassroom(ctx, t, h.pool)

	first, err := h.dispatch.Dispatch(ctx, quizID, courseID, push.ScopeAll, "", teacherID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(first.Added) != 3 || len(first.Skipped) != 0 {
		t.Fatalf("expected 3 added / 0 skipped, got %d / %d", len(first.Added), len(first.Skipped))
	}

	second, err := h.dispatch.Dispatch(ctx, quizID, courseID, push.ScopeAll, "", teacherID)
	if err != nil {
		t.Fatalf("dispatch while active: %v", err)
	}
	if len(second.Added) != 0 || len(second.Skipped) != 3 {
		t.Fatalf("active entries must block re-dispatch, got %d added / %d skipped", len(second.Added), len(second.Skipped))
	}

	if err := h.answer.Submit(ctx, first.Push.PushID, students[0], json.RawMessage(`"B"`)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	applied, err := h.pushes.TransitionEntry(ctx, first.Push.PushID, students[1], push.ActiveStatuses(), push.EntrySkipped, time.Now().UTC(), nil)
	if err != nil || !applied {
		t.Fatalf("skip transition: applied=%v err=%v", applied, err)
	}
	undoRes, err := h.undo.Undo(ctx, first.Push.PushID, teacherID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(undoRes.Retracted) != 1 || undoRes.Retracted[0] != students[2] {
		t.Fatalf("expected only the still-active recipient retracted, got %v", undoRes.Retracted)
	}

	wantStatus := map[uuid.UUID]push.EntryStatus{
		students[0]: push.EntryAnswered,
		students[1]: push.EntrySkipped,
		students[2]: push.EntryUndone,
	}
	for userID, want := range wantStatus {
		e, err := h.pushes.GetEntry(ctx, first.Push.PushID, userID)
		if err != nil || e == nil {
			t.Fatalf("get entry %s: %v", userID, err)
		}
		if e.Status != want {
			t.Fatalf("entry %s: expected %s, got %s", userID, want, e.Status)
		}
	}

	third, err := h.dispatch.Dispatch(ctx, quizID, courseID, push.ScopeAll, "", teacherID)
	if err != nil {
		t.Fatalf("re-dispatch: %v", err)
	}
	if len(third.Added) != 3 || len(third.Skipped) != 0 {
		t.Fatalf("terminal entries must release the per-quiz guard, got %d added / %d skipped", len(third.Added), len(third.Skipped))
	}
}

// TestUndoKeepsAnsweredEntries pushes to three students, lets two answer,
// then retracts. Answered entries stay answered with their grade, only the
// open entry flips to undone, and the course dashboard stops listing the
// push as soon as the retraction returns.
func TestUndoKeepsAnsweredEntries(t *testing.T) {
	h, cleanup := newHarness(t)
	defer cleanup()
	ctx := context.Background()

	teacherID, courseID, quizID, students := seedClassroom(ctx, t, h.pool)

	res, err := h.dispatch.Dispatch(ctx, quizID, courseID, push.ScopeAll, "", teacherID)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	pushID := res.Push.PushID

	if err := h.answer.Submit(ctx, pushID, students[0], json.RawMessage(`"B"`)); err != nil {
		t.Fatalf("submit A: %v", err)
	}
	if err := h.answer.Submit(ctx, pushID, students[1], json.RawMessage(`"C"`)); err != nil {
		t.Fatalf("submit B: %v", err)
	}

	undoRes, err := h.undo.Undo(ctx, pushID, teacherID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undoRes.AlreadyUndone {
		t.Fatal("first undo must not report already undone")
	}
	if len(undoRes.Retracted) != 1 || undoRes.Retracted[0] != students[2] {
		t.Fatalf("expected only the unanswered recipient retracted, got %v", undoRes.Retracted)
	}

	correctAnswer, err := h.pushes.GetEntry(ctx, pushID, students[0])
	if err != nil || correctAnswer == nil {
		t.Fatalf("get entry: %v", err)
	}
	if correctAnswer.Status != push.EntryAnswered {
		t.Fatalf("answered entry must survive undo, got %s", correctAnswer.Status)
	}
	if correctAnswer.Correct == nil || !*correctAnswer.Correct {
		t.Fatalf("expected graded correct, got %v", correctAnswer.Correct)
	}
	wrongAnswer, err := h.pushes.GetEntry(ctx, pushID, students[1])
	if err != nil || wrongAnswer == nil {
		t.Fatalf("get entry: %v", err)
	}
	if wrongAnswer.Status != push.EntryAnswered {
		t.Fatalf("answered entry must survive undo, got %s", wrongAnswer.Status)
	}
	if wrongAnswer.Correct == nil || *wrongAnswer.Correct {
		t.Fatalf("expected graded incorrect, got %v", wrongAnswer.Correct)
	}

	summaries, err := h.status.QueueStatus(ctx, courseID)
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	for _, s := range summaries {
		if s.QuizID == quizID {
			t.Fatalf("undone push must not appear on the dashboard: %+v", s)
		}
	}

	again, err := h.undo.Undo(ctx, pushID, teacherID)
	if err != nil {
		t.Fatalf("second undo: %v", err)
	}
	if !again.AlreadyUndone || len(again.Retracted) != 0 {
		t.Fatalf("second undo must be a no-op, got %+v", again)
	}
}

func newHarness(t *testing.T) (*harness, func()) {
	t.Helper()
	dsn := testDatabaseURL(t)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("db pool: %v", err)
	}

	root := repoRoot(t)
	if err := postgres.RunMigrations(ctx, pool, filepath.Join(root, "internal", "migrations")); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	if err := resetDatabase(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("reset db: %v", err)
	}

	logger := zerolog.Nop()
	pushRepo := postgres.NewPushRepository(pool)
	quizRepo := postgres.NewQuizRepository(pool)
	courseRepo := postgres.NewCourseRepository(pool)

	h := &harness{
		pool:     pool,
		pushes:   pushRepo,
		dispatch: dispatch.NewService(pushRepo, quizRepo, courseRepo, courseRepo, nopDeliverer{}, nil, logger),
		answer:   answer.NewService(pushRepo, quizRepo, grading.NewExpressionGrader(), nopNotifier{}, logger),
		undo:     undo.NewService(pushRepo, nopNotifier{}, nil, logger),
		status:   status.NewService(pushRepo, logger),
	}
	return h, pool.Close
}

// seedClassroom inserts a teacher, three enrolled students and one quiz with
// answer key "B", returning the ids the tests dispatch against.
func seedClassroom(ctx context.Context, t *testing.T, pool *pgxpool.Pool) (teacherID, courseID, quizID uuid.UUID, students []uuid.UUID) {
	t.Helper()

	teacherID = uuid.New()
	courseID = uuid.New()
	quizID = uuid.New()
	students = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	mustExec(ctx, t, pool,
		`INSERT INTO users (user_id, username, password_hash, role) VALUES ($1, $2, 'x', 'TEACHER')`,
		teacherID, "teacher-"+teacherID.String()[:8])
	for _, id := range students {
		mustExec(ctx, t, pool,
			`INSERT INTO users (user_id, username, password_hash, role) VALUES ($1, $2, 'x', 'STUDENT')`,
			id, "student-"+id.String()[:8])
	}
	mustExec(ctx, t, pool,
		`INSERT INTO courses (course_id, name, teacher_id) VALUES ($1, 'Algebra', $2)`,
		courseID, teacherID)
	for _, id := range students {
		mustExec(ctx, t, pool,
			`INSERT INTO enrollments (course_id, user_id) VALUES ($1, $2)`,
			courseID, id)
	}
	mustExec(ctx, t, pool,
		`INSERT INTO quizzes (quiz_id, course_id, owner_id, title, question_type, options, answer_key)
		 VALUES ($1, $2, $3, 'Fractions', 'multiple_choice', '["A","B","C","D"]', 'B')`,
		quizID, courseID, teacherID)
	return teacherID, courseID, quizID, students
}

func mustExec(ctx context.Context, t *testing.T, pool *pgxpool.Pool, sql string, args ...interface{}) {
	t.Helper()
	if _, err := pool.Exec(ctx, sql, args...); err != nil {
		t.Fatalf("seed %q: %v", sql, err)
	}
}

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return dsn
	}
	t.Skip("TEST_DATABASE_URL not set; skipping integration tests")
	return ""
}

func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE
			audit_log,
			queue_entries,
			pushes,
			quizzes,
			enrollments,
			courses,
			auth_sessions,
			users
		RESTART IDENTITY CASCADE
	`)
	return err
}
