package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestChatSocketDeliversMessages(t *testing.T) {
	env := newTestEnv(t)
	_, adaToken := env.signup(t, "ada", false)
	bayoID, bayoToken := env.signup(t, "bayo", false)

	server := httptest.NewServer(env.router)
	defer server.Close()
	base := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat?token="

	bayo := dial(t, base+bayoToken)
	defer bayo.Close()
	ada := dial(t, base+adaToken)
	defer ada.Close()

	expectType(t, bayo, "ready")
	expectType(t, ada, "ready")

	send := map[string]any{"type": "send", "payload": map[string]any{"to": bayoID, "message": "hello"}}
	if err := ada.WriteJSON(send); err != nil {
		t.Fatalf("write: %v", err)
	}

	payload := expectType(t, bayo, "message")
	if payload["message"] != "hello" {
		t.Fatalf("expected hello, got %v", payload)
	}
	// The sender's own socket echoes the stored message too.
	expectType(t, ada, "message")

	if err := ada.WriteJSON(map[string]any{"type": "shout"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectType(t, ada, "error")
}

func TestChatSocketRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"
	if _, resp, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Fatalf("expected handshake to fail")
	} else if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("expected 401 handshake, got %v", resp)
	}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func expectType(t *testing.T, conn *websocket.Conn, want string) map[string]any {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read %s: %v", want, err)
	}
	if msg.Type != want {
		t.Fatalf("expected %s, got %s (%v)", want, msg.Type, msg.Payload)
	}
	return msg.Payload
}
