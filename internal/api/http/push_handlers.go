package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/quizcast/quizcast/internal/domain/push"
)

type createPushRequest struct {
	QuizID      string `json:"quiz_id"`
	CourseID    string `json:"course_id"`
	TargetScope string `json:"target_scope"`
	Target      string `json:"target,omitempty"`
}

type createPushResponse struct {
	Push         *push.Push `json:"push"`
	AddedCount   int        `json:"added_count"`
	SkippedCount int        `json:"skipped_count"`
}

func (s *Server) createPush(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	var req createPushRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	quizID, err := parseUUID(req.QuizID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid quiz_id")
		return
	}
	courseID, err := parseUUID(req.CourseID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid course_id")
		return
	}
	scope, err := push.ParseScope(req.TargetScope)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if scope != push.ScopeAll && req.Target == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "target is required for scope "+string(scope))
		return
	}

	result, err := s.dispatchSvc.Dispatch(r.Context(), quizID, courseID, scope, req.Target, auth.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, createPushResponse{
		Push:         result.Push,
		AddedCount:   len(result.Added),
		SkippedCount: len(result.Skipped),
	})
}

type undoPushResponse struct {
	OK             bool       `json:"ok"`
	Push           *push.Push `json:"push"`
	AlreadyUndone  bool       `json:"already_undone"`
	RetractedCount int        `json:"retracted_count"`
}

func (s *Server) undoPush(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	identifier, err := parseUUIDParam(r, "identifier")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid identifier")
		return
	}
	result, err := s.undoSvc.Undo(r.Context(), identifier, auth.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, undoPushResponse{
		OK:             true,
		Push:           result.Push,
		AlreadyUndone:  result.AlreadyUndone,
		RetractedCount: len(result.Retracted),
	})
}

type submitAnswerRequest struct {
	Answer json.RawMessage `json:"answer"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	pushID, err := parseUUIDParam(r, "pushId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid push id")
		return
	}
	var req submitAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if len(req.Answer) == 0 {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "answer is required")
		return
	}
	if err := s.answerSvc.Submit(r.Context(), pushID, auth.UserID, req.Answer); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "answered"})
}

func (s *Server) queueStatus(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("courseId")
	if raw == "" {
		raw = r.URL.Query().Get("course_id")
	}
	courseID, err := parseUUID(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid courseId")
		return
	}
	summaries, err := s.statusSvc.QueueStatus(r.Context(), courseID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"active_pushes": summaries})
}

type historyItem struct {
	PushID     uuid.UUID        `json:"push_id"`
	QuizID     uuid.UUID        `json:"quiz_id"`
	Status     push.EntryStatus `json:"status"`
	AddedAt    time.Time        `json:"added_at"`
	AnsweredAt *time.Time       `json:"answered_at,omitempty"`
	Correct    *bool            `json:"correct,omitempty"`
}

func (s *Server) myQuizHistory(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	limit := queryInt(r, "limit", 0)
	entries, err := s.statusSvc.History(r.Context(), auth.UserID, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	history := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		history = append(history, historyItem{
			PushID:     e.PushID,
			QuizID:     e.QuizID,
			Status:     e.Status,
			AddedAt:    e.AddedAt,
			AnsweredAt: e.AnsweredAt,
			Correct:    e.Correct,
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (s *Server) listCourseQuizzes(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseUUIDParam(r, "courseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid course id")
		return
	}
	quizzes, err := s.quizzes.ListByCourse(r.Context(), courseID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}
