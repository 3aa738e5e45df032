// Package feed broadcasts game frames to websocket subscribers so external
// renderers can draw a running game. Frames are msgpack-encoded.
//
// Publishing never blocks the game loop: every subscriber has a small
// buffer and frames that do not fit are dropped for that subscriber.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/cookedbird/internal/games/flappy"
)

const (
	writeWait      = 2 * time.Second
	readLimit      = 512
	defaultBacklog = 4
)

// Hub tracks subscribers and fans frames out to them.
type Hub struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	closed   bool
	backlog  int
	upgrader websocket.Upgrader
	logger   *log.Logger

	published atomic.Uint64
	dropped   atomic.Uint64
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		subs:    make(map[*subscriber]struct{}),
		backlog: defaultBacklog,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Encode serializes a frame the way Publish sends it.
func Encode(f flappy.Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("feed: cannot encode frame: %w", err)
	}
	return data, nil
}

// Decode parses a frame received from the hub.
func Decode(data []byte) (flappy.Frame, error) {
	var f flappy.Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("feed: cannot decode frame: %w", err)
	}
	return f, nil
}

// Publish queues a frame for every subscriber without blocking.
func (h *Hub) Publish(f flappy.Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.subs) == 0 {
		return nil
	}

	data, err := Encode(f)
	if err != nil {
		return err
	}
	h.published.Add(1)
	for s := range h.subs {
		select {
		case s.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns how many frame deliveries were skipped because a subscriber was behind.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// ServeHTTP upgrades the request to a websocket and subscribes it.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s := &subscriber{conn: conn, send: make(chan []byte, h.backlog)}
	if !h.register(s) {
		conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"), time.Now().Add(writeWait))
		conn.Close()
		return
	}
	h.logger.Info("feed subscriber connected", "remote", r.RemoteAddr)

	go h.writeLoop(s)
	h.readLoop(s)
	h.logger.Info("feed subscriber disconnected", "remote", r.RemoteAddr)
}

func (h *Hub) register(s *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subs[s] = struct{}{}
	return true
}

// unregister removes s and closes its queue. Safe to call more than once.
func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.send)
}

// readLoop discards client messages and returns when the connection closes.
func (h *Hub) readLoop(s *subscriber) {
	defer h.unregister(s)
	s.conn.SetReadLimit(readLimit)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(s *subscriber) {
	defer s.conn.Close()
	for data := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
		if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			h.logger.Debug("feed write failed", "error", err)
			h.unregister(s)
			// Drain so the range ends once unregister closed the channel
			for range s.send {
			}
			return
		}
	}
	s.conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		close(s.send)
	}
}

// Serve runs an HTTP server exposing the hub at /feed until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/feed", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "cookedbird frame feed: connect a websocket to /feed (%d subscribers)\n", h.Subscribers())
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		h.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("feed: %w", err)
	case <-ctx.Done():
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("feed: shutdown: %w", err)
		}
		return nil
	}
}
