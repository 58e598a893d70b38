// Package grading evaluates submitted answers against a quiz's answer key
// or a rule expression.
package grading

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/quizcast/quizcast/internal/domain/quiz"
)

// ExpressionGrader grades answers. Quizzes carrying an answer rule are
// evaluated as a boolean expression with the submitted answer bound to the
// "answer" parameter; quizzes without a rule fall back to comparing
// against the answer key.
type ExpressionGrader struct{}

func NewExpressionGrader() *ExpressionGrader {
	return &ExpressionGrader{}
}

// Grade returns whether the raw JSON answer payload is correct for the
// quiz. Quizzes with neither rule nor key are ungradable and return an
// error.
func (g *ExpressionGrader) Grade(q *quiz.Quiz, payload json.RawMessage) (bool, error) {
	answer, err := decodeAnswer(q.QuestionType, payload)
	if err != nil {
		return false, err
	}

	if q.AnswerRule != "" {
		return evaluateRule(q.AnswerRule, answer)
	}
	if q.AnswerKey != "" {
		return compareKey(q, answer), nil
	}
	return false, fmt.Errorf("quiz %s has no answer key or rule", q.QuizID)
}

func decodeAnswer(qt quiz.QuestionType, payload json.RawMessage) (interface{}, error) {
	var raw string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	if qt == quiz.QuestionNumeric {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("numeric answer %q: %w", raw, err)
		}
		return f, nil
	}
	return raw, nil
}

func evaluateRule(rule string, answer interface{}) (bool, error) {
	expr, err := govaluate.NewEvaluableExpression(rule)
	if err != nil {
		return false, fmt.Errorf("parse answer rule: %w", err)
	}
	result, err := expr.Evaluate(map[string]interface{}{"answer": answer})
	if err != nil {
		return false, fmt.Errorf("evaluate answer rule: %w", err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("answer rule result is %T, want bool", result)
	}
	return ok, nil
}

func compareKey(q *quiz.Quiz, answer interface{}) bool {
	switch v := answer.(type) {
	case float64:
		key, err := strconv.ParseFloat(strings.TrimSpace(q.AnswerKey), 64)
		if err != nil {
			return false
		}
		return v == key
	case string:
		return strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(q.AnswerKey))
	default:
		return false
	}
}
