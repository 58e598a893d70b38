package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	appAnswer "github.com/quizcast/quizcast/internal/application/answer"
	appAudit "github.com/quizcast/quizcast/internal/application/audit"
	appAuth "github.com/quizcast/quizcast/internal/application/auth"
	appDispatch "github.com/quizcast/quizcast/internal/application/dispatch"
	"github.com/quizcast/quizcast/internal/application/delivery"
	appStatus "github.com/quizcast/quizcast/internal/application/status"
	appUndo "github.com/quizcast/quizcast/internal/application/undo"
	appUser "github.com/quizcast/quizcast/internal/application/user"
	"github.com/quizcast/quizcast/internal/domain/course"
	"github.com/quizcast/quizcast/internal/domain/push"
	"github.com/quizcast/quizcast/internal/domain/quiz"
	domainUser "github.com/quizcast/quizcast/internal/domain/user"
	"github.com/quizcast/quizcast/internal/infrastructure/ws"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	dispatchSvc         *appDispatch.Service
	undoSvc             *appUndo.Service
	answerSvc           *appAnswer.Service
	statusSvc           *appStatus.Service
	authSvc             *appAuth.Service
	userSvc             *appUser.Service
	auditSvc            *appAudit.Service
	quizzes             quiz.Repository
	fanout              *delivery.Fanout
	hub                 *ws.Hub
	sessionCookieName   string
	sessionCookieSecure bool
}

func NewServer(
	dispatchSvc *appDispatch.Service,
	undoSvc *appUndo.Service,
	answerSvc *appAnswer.Service,
	statusSvc *appStatus.Service,
	authSvc *appAuth.Service,
	userSvc *appUser.Service,
	auditSvc *appAudit.Service,
	quizzes quiz.Repository,
	fanout *delivery.Fanout,
	hub *ws.Hub,
	sessionCookieName string,
	sessionCookieSecure bool,
) *Server {
	return &Server{
		dispatchSvc:         dispatchSvc,
		undoSvc:             undoSvc,
		answerSvc:           answerSvc,
		statusSvc:           statusSvc,
		authSvc:             authSvc,
		userSvc:             userSvc,
		auditSvc:            auditSvc,
		quizzes:             quizzes,
		fanout:              fanout,
		hub:                 hub,
		sessionCookieName:   sessionCookieName,
		sessionCookieSecure: sessionCookieSecure,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/bootstrap", s.bootstrapAdmin)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.logout)
				r.Get("/me", s.me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/pushes", func(r chi.Router) {
				r.With(s.requireRole(string(domainUser.RoleTeacher), string(domainUser.RoleAdmin))).
					Post("/", s.createPush)
				r.With(s.requireRole(string(domainUser.RoleTeacher), string(domainUser.RoleAdmin))).
					Post("/{identifier}/undo", s.undoPush)
				r.Post("/{pushId}/answer", s.submitAnswer)
			})

			r.With(s.requireRole(string(domainUser.RoleTeacher), string(domainUser.RoleAdmin))).
				Get("/queue-status", s.queueStatus)
			r.Get("/my-quiz-history", s.myQuizHistory)
			r.Get("/courses/{courseId}/quizzes", s.listCourseQuizzes)

			r.Route("/users", func(r chi.Router) {
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Post("/", s.createUser)
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Get("/", s.listUsers)
				r.Get("/{userId}", s.getUser)
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Patch("/{userId}", s.updateUser)
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Put("/{userId}/password", s.setUserPassword)
			})

			r.With(s.requireRole(string(domainUser.RoleAdmin))).Get("/admin/audit", s.queryAudit)
		})
	})

	r.Get("/ws", s.serveWS)

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

// respondDomainError maps domain errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var ise *push.InvalidStateError
	switch {
	case errors.Is(err, push.ErrPushNotFound),
		errors.Is(err, push.ErrEntryNotFound),
		errors.Is(err, quiz.ErrQuizNotFound),
		errors.Is(err, course.ErrCourseNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, push.ErrNotOwner):
		respondError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.As(err, &ise):
		code := "INVALID_STATE"
		if ise.Current == push.EntryAnswered {
			code = "ALREADY_ANSWERED"
		}
		respondError(w, http.StatusConflict, code, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func parseUUID(val string) (uuid.UUID, error) {
	return uuid.Parse(val)
}

func queryInt(r *http.Request, key string, def int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
