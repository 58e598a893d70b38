package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quizcast/quizcast/internal/domain/audit"
	"github.com/quizcast/quizcast/internal/domain/course"
	coursemocks "github.com/quizcast/quizcast/internal/domain/course/mocks"
	"github.com/quizcast/quizcast/internal/domain/push"
	pushmocks "github.com/quizcast/quizcast/internal/domain/push/mocks"
	"github.com/quizcast/quizcast/internal/domain/quiz"
	quizmocks "github.com/quizcast/quizcast/internal/domain/quiz/mocks"
)

type fakeDeliverer struct {
	offered []uuid.UUID
	err     error
}

func (d *fakeDeliverer) Offer(_ context.Context, userID uuid.UUID) error {
	d.offered = append(d.offered, userID)
	return d.err
}

type fakeAuditor struct {
	records int
	action  audit.Action
}

func (a *fakeAuditor) Record(_ audit.EntityType, _ string, action audit.Action, _, _ string) {
	a.records++
	a.action = action
}

type fixture struct {
	pushes  *pushmocks.MockRepository
	quizzes *quizmocks.MockRepository
	courses *coursemocks.MockRepository
	roster  *coursemocks.MockRoster
	deliv   *fakeDeliverer
	auditor *fakeAuditor
	svc     *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		pushes:  pushmocks.NewMockRepository(ctrl),
		quizzes: quizmocks.NewMockRepository(ctrl),
		courses: coursemocks.NewMockRepository(ctrl),
		roster:  coursemocks.NewMockRoster(ctrl),
		deliv:   &fakeDeliverer{},
		auditor: &fakeAuditor{},
	}
	f.svc = NewService(f.pushes, f.quizzes, f.courses, f.roster, f.deliv, f.auditor, zerolog.Nop())
	return f
}

func TestDispatchCountsRecipients(t *testing.T) {
	f := newFixture(t)
	quizID, courseID, teacherID := uuid.New(), uuid.New(), uuid.New()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	f.quizzes.EXPECT().GetByID(gomock.Any(), quizID).
		Return(&quiz.Quiz{QuizID: quizID, OwnerID: teacherID}, nil)
	f.courses.EXPECT().GetByID(gomock.Any(), courseID).
		Return(&course.Course{CourseID: courseID, TeacherID: teacherID}, nil)
	f.pushes.EXPECT().CreatePush(gomock.Any(), gomock.Any()).Return(nil)
	f.roster.EXPECT().Resolve(gomock.Any(), courseID, push.ScopeAll, "").
		Return([]uuid.UUID{alice, bob, carol}, nil)

	// Bob still has an active entry for this quiz and is skipped.
	f.pushes.EXPECT().CreateEntryIfNoActive(gomock.Any(), entryFor(alice)).Return(true, nil)
	f.pushes.EXPECT().CreateEntryIfNoActive(gomock.Any(), entryFor(bob)).Return(false, nil)
	f.pushes.EXPECT().CreateEntryIfNoActive(gomock.Any(), entryFor(carol)).Return(true, nil)

	result, err := f.svc.Dispatch(context.Background(), quizID, courseID, push.ScopeAll, "", teacherID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{alice, carol}, result.Added)
	assert.Equal(t, []uuid.UUID{bob}, result.Skipped)
	assert.Equal(t, []uuid.UUID{alice, carol}, f.deliv.offered, "only added recipients are offered delivery")
	assert.Equal(t, 1, f.auditor.records)
	assert.Equal(t, audit.ActionDispatch, f.auditor.action)
	assert.Equal(t, push.StatusActive, result.Push.Status)
}

func TestDispatchQuizNotFound(t *testing.T) {
	f := newFixture(t)
	quizID := uuid.New()
	f.quizzes.EXPECT().GetByID(gomock.Any(), quizID).Return(nil, nil)

	_, err := f.svc.Dispatch(context.Background(), quizID, uuid.New(), push.ScopeAll, "", uuid.New())
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
}

func TestDispatchCourseNotFound(t *testing.T) {
	f := newFixture(t)
	quizID, courseID := uuid.New(), uuid.New()
	f.quizzes.EXPECT().GetByID(gomock.Any(), quizID).Return(&quiz.Quiz{QuizID: quizID}, nil)
	f.courses.EXPECT().GetByID(gomock.Any(), courseID).Return(nil, nil)

	_, err := f.svc.Dispatch(context.Background(), quizID, courseID, push.ScopeAll, "", uuid.New())
	assert.ErrorIs(t, err, course.ErrCourseNotFound)
}

func TestDispatchRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	quizID, courseID := uuid.New(), uuid.New()
	owner, teacher, stranger := uuid.New(), uuid.New(), uuid.New()

	f.quizzes.EXPECT().GetByID(gomock.Any(), quizID).
		Return(&quiz.Quiz{QuizID: quizID, OwnerID: owner}, nil)
	f.courses.EXPECT().GetByID(gomock.Any(), courseID).
		Return(&course.Course{CourseID: courseID, TeacherID: teacher}, nil)

	_, err := f.svc.Dispatch(context.Background(), quizID, courseID, push.ScopeAll, "", stranger)
	assert.ErrorIs(t, err, push.ErrNotOwner)
}

func TestDispatchIsolatesPerRecipientFailures(t *testing.T) {
	f := newFixture(t)
	quizID, courseID, teacherID := uuid.New(), uuid.New(), uuid.New()
	alice, bob := uuid.New(), uuid.New()

	f.quizzes.EXPECT().GetByID(gomock.Any(), quizID).
		Return(&quiz.Quiz{QuizID: quizID, OwnerID: teacherID}, nil)
	f.courses.EXPECT().GetByID(gomock.Any(), courseID).
		Return(&course.Course{CourseID: courseID, TeacherID: teacherID}, nil)
	f.pushes.EXPECT().CreatePush(gomock.Any(), gomock.Any()).Return(nil)
	f.roster.EXPECT().Resolve(gomock.Any(), courseID, push.ScopeGroup, "blue").
		Return([]uuid.UUID{alice, bob}, nil)

	f.pushes.EXPECT().CreateEntryIfNoActive(gomock.Any(), entryFor(alice)).
		Return(false, errors.New("connection reset"))
	f.pushes.EXPECT().CreateEntryIfNoActive(gomock.Any(), entryFor(bob)).Return(true, nil)

	result, err := f.svc.Dispatch(context.Background(), quizID, courseID, push.ScopeGroup, "blue", teacherID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{bob}, result.Added)
	assert.Equal(t, []uuid.UUID{alice}, result.Skipped, "a failed recipient counts as skipped")
	assert.Equal(t, 2, len(result.Added)+len(result.Skipped), "every resolved target is counted exactly once")
	assert.Equal(t, []uuid.UUID{bob}, f.deliv.offered, "failed recipients are not offered delivery")
}

// entryFor matches a queue entry by recipient.
func entryFor(userID uuid.UUID) gomock.Matcher {
	return entryMatcher{userID: userID}
}

type entryMatcher struct{ userID uuid.UUID }

func (m entryMatcher) Matches(x interface{}) bool {
	e, ok := x.(*push.QueueEntry)
	return ok && e.UserID == m.userID && e.Status == push.EntryPending
}

func (m entryMatcher) String() string {
	return "queue entry for user " + m.userID.String()
}
