package grading

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizcast/quizcast/internal/domain/quiz"
)

func TestGradeAnswerKey(t *testing.T) {
	g := NewExpressionGrader()
	q := &quiz.Quiz{QuestionType: quiz.QuestionMultipleChoice, AnswerKey: "B"}

	correct, err := g.Grade(q, json.RawMessage(`"b"`))
	require.NoError(t, err)
	assert.True(t, correct, "key comparison is case-insensitive")

	correct, err = g.Grade(q, json.RawMessage(`"C"`))
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestGradeNumericKey(t *testing.T) {
	g := NewExpressionGrader()
	q := &quiz.Quiz{QuestionType: quiz.QuestionNumeric, AnswerKey: "42"}

	correct, err := g.Grade(q, json.RawMessage(`"42.0"`))
	require.NoError(t, err)
	assert.True(t, correct)

	_, err = g.Grade(q, json.RawMessage(`"not a number"`))
	assert.Error(t, err)
}

func TestGradeRule(t *testing.T) {
	g := NewExpressionGrader()
	q := &quiz.Quiz{QuestionType: quiz.QuestionNumeric, AnswerRule: "answer >= 40 && answer <= 45"}

	correct, err := g.Grade(q, json.RawMessage(`"41"`))
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = g.Grade(q, json.RawMessage(`"39"`))
	require.NoError(t, err)
	assert.False(t, correct)
}

func TestGradeRuleText(t *testing.T) {
	g := NewExpressionGrader()
	q := &quiz.Quiz{QuestionType: quiz.QuestionText, AnswerRule: "answer == 'paris' || answer == 'Paris'"}

	correct, err := g.Grade(q, json.RawMessage(`"Paris"`))
	require.NoError(t, err)
	assert.True(t, correct)
}

func TestGradeBadRule(t *testing.T) {
	g := NewExpressionGrader()
	q := &quiz.Quiz{QuestionType: quiz.QuestionText, AnswerRule: "answer +"}

	_, err := g.Grade(q, json.RawMessage(`"x"`))
	assert.Error(t, err)
}

func TestGradeUngradable(t *testing.T) {
	g := NewExpressionGrader()
	q := &quiz.Quiz{QuestionType: quiz.QuestionText}

	_, err := g.Grade(q, json.RawMessage(`"x"`))
	assert.Error(t, err)
}
