package push

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"squares-board/internal/board"
)

func TestListenerAppliesUpdates(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Malformed frame and unknown type must both be skipped silently.
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{not json`))
		_ = conn.WriteJSON(map[string]any{"type": "heartbeat"})
		_ = conn.WriteJSON(map[string]any{
			"type": "update",
			"scores": []map[string]any{
				{"identity": "a@example.com", "displayName": "Alice", "score": 3},
			},
			"trends": map[string]string{"a@example.com": "up"},
		})
		holdOpen(conn)
	}))
	defer server.Close()

	b := board.New()
	listener := NewListener(testConfig(server.URL), b, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	waitFor(t, 5*time.Second, func() bool {
		snap := b.Snapshot()
		return len(snap.Players) == 1 && snap.Players[0].Score == 3 && snap.Trends["a@example.com"] == "up"
	})

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if listener.State() != Disconnected {
		t.Fatalf("expected disconnected after Run, got %s", listener.State())
	}
}

func TestListenerReconnectsAfterDrop(t *testing.T) {
	var dials int64
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		switch atomic.AddInt64(&dials, 1) {
		case 1:
			_ = conn.WriteJSON(map[string]any{
				"type":   "update",
				"scores": []map[string]any{{"identity": "a@example.com", "score": 1}},
			})
			// Drop the connection to trigger a reconnect.
		default:
			_ = conn.WriteJSON(map[string]any{
				"type":   "update",
				"scores": []map[string]any{{"identity": "a@example.com", "score": 2}},
			})
			holdOpen(conn)
		}
	}))
	defer server.Close()

	b := board.New()
	listener := NewListener(testConfig(server.URL), b, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = listener.Run(ctx) }()

	waitFor(t, 5*time.Second, func() bool {
		snap := b.Snapshot()
		return len(snap.Players) == 1 && snap.Players[0].Score == 2
	})
	if atomic.LoadInt64(&dials) < 2 {
		t.Fatalf("expected at least 2 dials, got %d", dials)
	}
}

func TestListenerStopsOnCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		holdOpen(conn)
	}))
	defer server.Close()

	listener := NewListener(testConfig(server.URL), board.New(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- listener.Run(ctx) }()

	waitFor(t, 5*time.Second, func() bool { return listener.State() == Connected })
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("listener leaked after cancel")
	}
}

func TestListenerGivesUpAfterRetryCeiling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := wsURL(server.URL)
	server.Close() // every dial now fails

	cfg := Config{URL: url, InitialDelay: 5 * time.Millisecond, MaxDelay: 10 * time.Millisecond, MaxRetries: 2}
	listener := NewListener(cfg, board.New(), zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- listener.Run(context.Background()) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected an error once the retry ceiling is hit")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not respect the retry ceiling")
	}
}

func testConfig(httpURL string) Config {
	return Config{
		URL:          wsURL(httpURL),
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
	}
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

// holdOpen blocks until the peer closes the connection.
func holdOpen(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
