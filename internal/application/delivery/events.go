package delivery

import (
	"github.com/google/uuid"

	"github.com/quizcast/quizcast/internal/domain/quiz"
)

// Outbound event types.
const (
	TypeShowNextQuiz    = "show_next_quiz"
	TypeAnswerSubmitted = "answer_submitted"
	TypeQuizUndone      = "quiz_undone"
	TypeQuizSkipped     = "quiz_skipped"
)

// QuizPayload is the client-facing view of a quiz. Answer key and rule
// never leave the server.
type QuizPayload struct {
	QuizID         uuid.UUID         `json:"quiz_id"`
	Title          string            `json:"title"`
	QuestionType   quiz.QuestionType `json:"question_type"`
	Options        []string          `json:"options,omitempty"`
	TimeoutSeconds int               `json:"timeout_seconds"`
}

// ShowNextQuiz tells one tab to display a quiz.
type ShowNextQuiz struct {
	Type   string      `json:"type"`
	PushID uuid.UUID   `json:"push_id"`
	Quiz   QuizPayload `json:"quiz"`
}

// EntryEvent announces that a queue entry reached a terminal state.
type EntryEvent struct {
	Type   string    `json:"type"`
	PushID uuid.UUID `json:"push_id"`
}

func NewQuizPayload(q *quiz.Quiz) QuizPayload {
	return QuizPayload{
		QuizID:         q.QuizID,
		Title:          q.Title,
		QuestionType:   q.QuestionType,
		Options:        q.Options,
		TimeoutSeconds: q.TimeoutSeconds,
	}
}
