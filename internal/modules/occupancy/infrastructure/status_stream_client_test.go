package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStatusStreamClientURL(t *testing.T) {
	if got := NewStatusStreamClient("127.0.0.1:8123", 0).URL(); got != "ws://127.0.0.1:8123/ws/status" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := NewStatusStreamClient("https://example.com:8443/", 0).URL(); got != "wss://example.com:8443/ws/status" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestStatusStreamClientRoundTrip(t *testing.T) {
	received := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/status" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- string(data)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"tables":[]}`))
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	client := NewStatusStreamClient(srv.URL, time.Second)
	if !strings.HasPrefix(client.URL(), "ws://") {
		t.Fatalf("expected ws scheme, got %s", client.URL())
	}

	stream, err := client.Dial(context.Background())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer stream.Close()

	if err := stream.Send("ping"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	select {
	case got := <-received:
		if got != "ping" {
			t.Fatalf("server received %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received ping")
	}

	frame, err := stream.Receive()
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if string(frame) != `{"tables":[]}` {
		t.Fatalf("unexpected frame %s", frame)
	}

	if err := stream.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := stream.Receive(); err == nil {
		t.Fatal("receive after close should fail")
	}
}

func TestStatusStreamClientDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := NewStatusStreamClient(srv.URL, time.Second).Dial(context.Background()); err == nil {
		t.Fatal("expected handshake failure")
	}
}
