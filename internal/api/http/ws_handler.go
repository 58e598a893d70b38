package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/quizcast/quizcast/internal/domain/push"
	"github.com/quizcast/quizcast/internal/infrastructure/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const authFrameTimeout = 10 * time.Second

type authFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
	TabID string `json:"tab_id"`
}

type inboundFrame struct {
	Type   string          `json:"type"`
	PushID string          `json:"push_id"`
	Answer json.RawMessage `json:"answer"`
}

type ackFrame struct {
	Type string `json:"type"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	PushID  string `json:"push_id,omitempty"`
}

// serveWS upgrades the connection and runs the session. The first frame
// must be an auth frame carrying the bearer token and the tab id;
// everything after that is quiz traffic.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	_ = conn.SetReadDeadline(time.Now().Add(authFrameTimeout))
	var auth authFrame
	if err := conn.ReadJSON(&auth); err != nil || auth.Type != "auth" || auth.TabID == "" {
		_ = conn.WriteJSON(errorFrame{Type: "auth_error", Code: "INVALID_PARAM", Message: "expected auth frame with token and tab_id"})
		_ = conn.Close()
		return
	}
	u, _, err := s.authSvc.Authenticate(r.Context(), auth.Token)
	if err != nil {
		_ = conn.WriteJSON(errorFrame{Type: "auth_error", Code: "UNAUTHORIZED", Message: err.Error()})
		_ = conn.Close()
		return
	}

	client := ws.NewClient(ws.TabKey{UserID: u.UserID, TabID: auth.TabID}, conn)
	s.hub.Register(client)
	go client.WritePump()

	client.SafeSend(mustJSON(ackFrame{Type: "auth_ok"}))
	if err := s.fanout.Connected(r.Context(), client.Key); err != nil {
		client.SafeSend(mustJSON(errorFrame{Type: "error", Code: "INTERNAL_ERROR", Message: "catch-up failed"}))
	}

	client.ReadPump(func(data []byte) {
		s.handleFrame(client, data)
	})

	// A superseded connection must not clear the cursor its replacement
	// just set, or the tab would be re-offered the quiz it is showing.
	if s.hub.Unregister(client) {
		s.fanout.Disconnected(client.Key)
	}
}

func (s *Server) handleFrame(client *ws.Client, data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		client.SafeSend(mustJSON(errorFrame{Type: "error", Code: "INVALID_PARAM", Message: "malformed frame"}))
		return
	}
	switch frame.Type {
	case "quiz_answer":
		s.handleQuizAnswer(client, frame)
	case "ping":
		client.SafeSend(mustJSON(ackFrame{Type: "pong"}))
	default:
		client.SafeSend(mustJSON(errorFrame{Type: "error", Code: "INVALID_PARAM", Message: "unknown frame type " + frame.Type}))
	}
}

func (s *Server) handleQuizAnswer(client *ws.Client, frame inboundFrame) {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	pushID, err := uuid.Parse(frame.PushID)
	if err != nil {
		client.SafeSend(mustJSON(errorFrame{Type: "answer_error", Code: "INVALID_PARAM", Message: "invalid push_id", PushID: frame.PushID}))
		return
	}
	if len(frame.Answer) == 0 {
		client.SafeSend(mustJSON(errorFrame{Type: "answer_error", Code: "INVALID_PARAM", Message: "answer is required", PushID: frame.PushID}))
		return
	}

	err = s.answerSvc.Submit(ctx, pushID, client.Key.UserID, frame.Answer)
	if err == nil {
		return
	}

	var ise *push.InvalidStateError
	switch {
	case errors.Is(err, push.ErrEntryNotFound):
		client.SafeSend(mustJSON(errorFrame{Type: "answer_error", Code: "NOT_FOUND", Message: err.Error(), PushID: frame.PushID}))
	case errors.As(err, &ise):
		code := "QUIZ_CLOSED"
		if ise.Current == push.EntryAnswered {
			code = "ALREADY_ANSWERED"
		}
		client.SafeSend(mustJSON(errorFrame{Type: "answer_error", Code: code, Message: err.Error(), PushID: frame.PushID}))
	default:
		client.SafeSend(mustJSON(errorFrame{Type: "answer_error", Code: "INTERNAL_ERROR", Message: "submission failed", PushID: frame.PushID}))
	}
}

// contextWithTimeout bounds work triggered by an inbound frame; frames
// outlive the request context of the upgrade.
func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func mustJSON(v interface{}) []byte {
	data, _ := json.Marshal(v)
	return data
}
