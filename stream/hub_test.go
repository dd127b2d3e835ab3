package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return f
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	a, b := dial(t, srv), dial(t, srv)
	waitClients(t, hub, 2)

	hub.Broadcast(Frame{Turn: 3, Snapshot: "#*\n r"})
	for _, conn := range []*websocket.Conn{a, b} {
		f := readFrame(t, conn)
		if f.Turn != 3 || f.Snapshot != "#*\n r" {
			t.Errorf("frame = %+v", f)
		}
	}
}

func TestHubSendsLatestOnJoin(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	hub.Broadcast(Frame{Turn: 1, Snapshot: "a"})
	hub.Broadcast(Frame{Turn: 2, Snapshot: "b"})

	conn := dial(t, srv)
	if f := readFrame(t, conn); f.Turn != 2 || f.Snapshot != "b" {
		t.Errorf("join frame = %+v, want turn 2", f)
	}
}

func TestHubDropsDisconnected(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitClients(t, hub, 0)

	// Broadcasting with no viewers must not block
	hub.Broadcast(Frame{Turn: 9})
}
