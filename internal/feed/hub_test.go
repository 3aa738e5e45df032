package feed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSubscriberReceivesFrame(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	waitFor(t, "subscriber", func() bool { return hub.Subscribers() == 1 })

	sent := flappy.Frame{
		State:     "playing",
		Score:     4,
		HighScore: 9,
		PlayerX:   384,
		PlayerY:   512.5,
		Pairs:     []flappy.PairFrame{{X: 1000, UpperY: 735, UpperHeight: 345, LowerHeight: 465}},
	}
	if err := hub.Publish(sent); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Errorf("Message type = %d, expected binary", kind)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got.Score != 4 || got.HighScore != 9 || got.PlayerY != 512.5 || len(got.Pairs) != 1 || got.Pairs[0].UpperY != 735 {
		t.Errorf("Received frame = %+v", got)
	}

	conn.Close()
	waitFor(t, "unsubscribe", func() bool { return hub.Subscribers() == 0 })
}

func TestPublishDropsWhenSubscriberIsBehind(t *testing.T) {
	hub := NewHub(nil)
	s := &subscriber{send: make(chan []byte, 1)}
	hub.subs[s] = struct{}{}

	for i := 0; i < 3; i++ {
		if err := hub.Publish(flappy.Frame{Score: i}); err != nil {
			t.Fatal(err)
		}
	}
	if hub.Dropped() != 2 {
		t.Errorf("Dropped() = %d, expected 2", hub.Dropped())
	}
	f, err := Decode(<-s.send)
	if err != nil {
		t.Fatal(err)
	}
	if f.Score != 0 {
		t.Errorf("Queued frame score = %d, expected the first one", f.Score)
	}

	hub.Close()
	if _, ok := <-s.send; ok {
		t.Error("Close() should close subscriber queues")
	}
	if err := hub.Publish(flappy.Frame{}); err != nil {
		t.Errorf("Publish() after Close() = %v", err)
	}
}

func TestClosedHubRejectsSubscribers(t *testing.T) {
	hub := NewHub(nil)
	hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("Expected a going-away close, got %v", err)
	}
	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, expected 0", hub.Subscribers())
	}
}
