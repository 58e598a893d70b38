package ws

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func testClient(userID uuid.UUID, tabID string) *Client {
	return NewClient(TabKey{UserID: userID, TabID: tabID}, nil)
}

func TestRegisterSupersedes(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	userID := uuid.New()

	first := testClient(userID, "tab-1")
	second := testClient(userID, "tab-1")

	hub.Register(first)
	hub.Register(second)

	if got := hub.Get(first.Key); got != second {
		t.Fatalf("expected second client registered, got %v", got)
	}
	if !first.closed.Load() {
		t.Fatal("superseded client should be closed")
	}
	if second.closed.Load() {
		t.Fatal("new client should stay open")
	}
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}
}

func TestUnregisterStaleClientKeepsCurrent(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	userID := uuid.New()

	first := testClient(userID, "tab-1")
	second := testClient(userID, "tab-1")

	hub.Register(first)
	hub.Register(second)
	if hub.Unregister(first) {
		t.Fatal("unregistering a superseded client must report false")
	}

	if got := hub.Get(second.Key); got != second {
		t.Fatal("unregistering a superseded client must not evict the current one")
	}

	if !hub.Unregister(second) {
		t.Fatal("unregistering the current client must report true")
	}
	if hub.Get(second.Key) != nil {
		t.Fatal("expected key removed")
	}
}

func TestSendToTab(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	userID := uuid.New()
	c := testClient(userID, "tab-1")
	hub.Register(c)

	if !hub.SendToTab(c.Key, map[string]string{"type": "ping"}) {
		t.Fatal("expected send to succeed")
	}
	select {
	case data := <-c.send:
		if string(data) != `{"type":"ping"}` {
			t.Fatalf("unexpected payload: %s", data)
		}
	default:
		t.Fatal("no message queued")
	}

	if hub.SendToTab(TabKey{UserID: uuid.New(), TabID: "nope"}, "x") {
		t.Fatal("send to unknown tab must report false")
	}
}

func TestSendToUserReachesAllTabs(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	userID := uuid.New()
	other := uuid.New()

	a := testClient(userID, "tab-a")
	b := testClient(userID, "tab-b")
	c := testClient(other, "tab-a")
	hub.Register(a)
	hub.Register(b)
	hub.Register(c)

	if sent := hub.SendToUser(userID, "hello"); sent != 2 {
		t.Fatalf("expected 2 tabs reached, got %d", sent)
	}
	if len(c.send) != 0 {
		t.Fatal("other user's tab must not receive the message")
	}
	if keys := hub.TabsForUser(userID); len(keys) != 2 {
		t.Fatalf("expected 2 tabs for user, got %d", len(keys))
	}
}

func TestSafeSendAfterClose(t *testing.T) {
	c := testClient(uuid.New(), "tab-1")
	c.Close()
	c.Close()

	if c.SafeSend([]byte("x")) {
		t.Fatal("send after close must report false")
	}
}

func TestStopClosesAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a := testClient(uuid.New(), "tab-1")
	b := testClient(uuid.New(), "tab-1")
	hub.Register(a)
	hub.Register(b)

	hub.Stop()

	if hub.ClientCount() != 0 {
		t.Fatal("expected empty registry after stop")
	}
	if !a.closed.Load() || !b.closed.Load() {
		t.Fatal("all clients should be closed")
	}
}
