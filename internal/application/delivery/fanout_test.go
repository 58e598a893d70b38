package delivery

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quizcast/quizcast/internal/domain/push"
	pushmocks "github.com/quizcast/quizcast/internal/domain/push/mocks"
	"github.com/quizcast/quizcast/internal/domain/quiz"
	quizmocks "github.com/quizcast/quizcast/internal/domain/quiz/mocks"
	"github.com/quizcast/quizcast/internal/infrastructure/ws"
)

type fakeHub struct {
	mu       sync.Mutex
	tabs     []ws.TabKey
	tabSent  map[ws.TabKey][]interface{}
	userSent []interface{}
}

func newFakeHub(tabs ...ws.TabKey) *fakeHub {
	return &fakeHub{tabs: tabs, tabSent: make(map[ws.TabKey][]interface{})}
}

func (h *fakeHub) SendToTab(key ws.TabKey, v interface{}) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range h.tabs {
		if t == key {
			h.tabSent[key] = append(h.tabSent[key], v)
			return true
		}
	}
	return false
}

func (h *fakeHub) SendToUser(userID uuid.UUID, v interface{}) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.tabs {
		if t.UserID == userID {
			n++
		}
	}
	h.userSent = append(h.userSent, v)
	return n
}

func (h *fakeHub) TabsForUser(userID uuid.UUID) []ws.TabKey {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := []ws.TabKey{}
	for _, t := range h.tabs {
		if t.UserID == userID {
			keys = append(keys, t)
		}
	}
	return keys
}

func entry(pushID, userID, quizID uuid.UUID, status push.EntryStatus, addedAt time.Time) *push.QueueEntry {
	return &push.QueueEntry{PushID: pushID, UserID: userID, QuizID: quizID, Status: status, AddedAt: addedAt}
}

func TestConnectedDeliversOnlyQueueHead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pushmocks.NewMockRepository(ctrl)
	quizzes := quizmocks.NewMockRepository(ctrl)

	userID := uuid.New()
	quizA, quizB := uuid.New(), uuid.New()
	pushA, pushB := uuid.New(), uuid.New()
	now := time.Now().UTC()

	key := ws.TabKey{UserID: userID, TabID: "tab-1"}
	hub := newFakeHub(key)

	repo.EXPECT().ListActiveEntriesByUser(gomock.Any(), userID).Return([]*push.QueueEntry{
		entry(pushA, userID, quizA, push.EntryPending, now.Add(-2*time.Minute)),
		entry(pushB, userID, quizB, push.EntryPending, now.Add(-time.Minute)),
	}, nil)
	quizzes.EXPECT().GetByID(gomock.Any(), quizA).Return(&quiz.Quiz{QuizID: quizA, Title: "Head"}, nil)
	repo.EXPECT().TransitionEntry(gomock.Any(), pushA, userID,
		[]push.EntryStatus{push.EntryPending}, push.EntryViewing, gomock.Any(), gomock.Nil()).
		Return(true, nil)

	f := NewFanout(repo, quizzes, hub, zerolog.Nop())
	require.NoError(t, f.Connected(context.Background(), key))

	require.Len(t, hub.tabSent[key], 1)
	msg := hub.tabSent[key][0].(ShowNextQuiz)
	assert.Equal(t, TypeShowNextQuiz, msg.Type)
	assert.Equal(t, pushA, msg.PushID)
	assert.Equal(t, "Head", msg.Quiz.Title)
}

func TestConnectedEmptyQueueSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pushmocks.NewMockRepository(ctrl)
	quizzes := quizmocks.NewMockRepository(ctrl)

	userID := uuid.New()
	key := ws.TabKey{UserID: userID, TabID: "tab-1"}
	hub := newFakeHub(key)

	repo.EXPECT().ListActiveEntriesByUser(gomock.Any(), userID).Return(nil, nil)

	f := NewFanout(repo, quizzes, hub, zerolog.Nop())
	require.NoError(t, f.Connected(context.Background(), key))
	assert.Empty(t, hub.tabSent[key])
}

func TestOfferSkipsBusyTab(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pushmocks.NewMockRepository(ctrl)
	quizzes := quizmocks.NewMockRepository(ctrl)

	userID := uuid.New()
	quizA := uuid.New()
	pushA := uuid.New()
	now := time.Now().UTC()

	key := ws.TabKey{UserID: userID, TabID: "tab-1"}
	hub := newFakeHub(key)

	head := entry(pushA, userID, quizA, push.EntryPending, now)
	repo.EXPECT().ListActiveEntriesByUser(gomock.Any(), userID).Return([]*push.QueueEntry{head}, nil)
	quizzes.EXPECT().GetByID(gomock.Any(), quizA).Return(&quiz.Quiz{QuizID: quizA}, nil)
	repo.EXPECT().TransitionEntry(gomock.Any(), pushA, userID,
		[]push.EntryStatus{push.EntryPending}, push.EntryViewing, gomock.Any(), gomock.Nil()).
		Return(true, nil)

	f := NewFanout(repo, quizzes, hub, zerolog.Nop())
	require.NoError(t, f.Offer(context.Background(), userID))
	// Second offer finds the tab busy with the same head and stays quiet.
	require.NoError(t, f.Offer(context.Background(), userID))

	assert.Len(t, hub.tabSent[key], 1)
}

func TestResolvedBroadcastsAndAdvances(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := pushmocks.NewMockRepository(ctrl)
	quizzes := quizmocks.NewMockRepository(ctrl)

	userID := uuid.New()
	quizA, quizB := uuid.New(), uuid.New()
	pushA, pushB := uuid.New(), uuid.New()
	now := time.Now().UTC()

	key := ws.TabKey{UserID: userID, TabID: "tab-1"}
	hub := newFakeHub(key)

	first := repo.EXPECT().ListActiveEntriesByUser(gomock.Any(), userID).Return([]*push.QueueEntry{
		entry(pushA, userID, quizA, push.EntryViewing, now.Add(-time.Minute)),
		entry(pushB, userID, quizB, push.EntryPending, now),
	}, nil)
	repo.EXPECT().ListActiveEntriesByUser(gomock.Any(), userID).Return([]*push.QueueEntry{
		entry(pushB, userID, quizB, push.EntryPending, now),
	}, nil).After(first)

	quizzes.EXPECT().GetByID(gomock.Any(), quizA).Return(&quiz.Quiz{QuizID: quizA}, nil)
	quizzes.EXPECT().GetByID(gomock.Any(), quizB).Return(&quiz.Quiz{QuizID: quizB}, nil)
	repo.EXPECT().TransitionEntry(gomock.Any(), pushB, userID,
		[]push.EntryStatus{push.EntryPending}, push.EntryViewing, gomock.Any(), gomock.Nil()).
		Return(true, nil)

	f := NewFanout(repo, quizzes, hub, zerolog.Nop())
	require.NoError(t, f.Connected(context.Background(), key))

	f.Resolved(context.Background(), userID, pushA, push.EntryAnswered)

	require.Len(t, hub.userSent, 1)
	evt := hub.userSent[0].(EntryEvent)
	assert.Equal(t, TypeAnswerSubmitted, evt.Type)
	assert.Equal(t, pushA, evt.PushID)

	require.Len(t, hub.tabSent[key], 2)
	next := hub.tabSent[key][1].(ShowNextQuiz)
	assert.Equal(t, pushB, next.PushID)
}

func TestResolvedUndoneEventType(t *testing.T) {
	assert.Equal(t, TypeQuizUndone, eventType(push.EntryUndone))
	assert.Equal(t, TypeQuizSkipped, eventType(push.EntrySkipped))
	assert.Equal(t, TypeAnswerSubmitted, eventType(push.EntryAnswered))
}
