package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// QuestionType represents the kind of answer a quiz expects.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionNumeric        QuestionType = "numeric"
	QuestionText           QuestionType = "text"
)

var ErrQuizNotFound = errors.New("quiz not found")

// Quiz is the read model of authored quiz content. Authoring and
// sanitization happen outside this service; the push engine only reads.
type Quiz struct {
	ID             int64        `json:"id"`
	QuizID         uuid.UUID    `json:"quizId"`
	CourseID       uuid.UUID    `json:"courseId"`
	OwnerID        uuid.UUID    `json:"ownerId"`
	Title          string       `json:"title"`
	QuestionType   QuestionType `json:"questionType"`
	Options        []string     `json:"options,omitempty"`
	AnswerKey      string       `json:"-"`
	AnswerRule     string       `json:"-"`
	TimeoutSeconds int          `json:"timeoutSeconds"`
	CreatedAt      time.Time    `json:"createdAt"`
}
