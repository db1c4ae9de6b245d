// Package watch streams trick events to WebSocket spectators.
package watch

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

// Message is the frame sent to spectators.
type Message struct {
	RunID uuid.UUID `json:"runId"`
	Event sim.Event `json:"event"`
}

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

type spectator struct {
	conn *websocket.Conn
	send chan Message
}

// Hub is an http.Handler accepting spectators and a sim.Sink fanning events
// out to them. Slow spectators are disconnected rather than stalling a run.
type Hub struct {
	log     logrus.FieldLogger
	origins []string

	mu      sync.Mutex
	clients map[*spectator]struct{}
	closed  bool
}

// NewHub returns a Hub. Browsers from other origins are refused unless their
// host matches one of originPatterns (path.Match syntax, e.g. "*.example.com").
func NewHub(log logrus.FieldLogger, originPatterns ...string) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{log: log, origins: originPatterns, clients: make(map[*spectator]struct{})}
}

// ServeHTTP upgrades the request and streams events until either side closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.log.WithError(err).Warn("spectator upgrade failed")
		return
	}
	s := &spectator{conn: conn, send: make(chan Message, sendBuffer)}
	if !h.add(s) {
		conn.Close(websocket.StatusGoingAway, "Server shutting down.")
		return
	}
	defer h.remove(s)

	// Spectators never send; CloseRead handles control frames and cancels on close.
	ctx := conn.CloseRead(r.Context())
	h.log.WithField("remote", r.RemoteAddr).Debug("spectator connected")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.send:
			if !ok {
				conn.Close(websocket.StatusPolicyViolation, "Too slow.")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, msg)
			cancel()
			if err != nil {
				h.log.WithError(err).Debug("spectator write failed")
				return
			}
		}
	}
}

func (h *Hub) add(s *spectator) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[s] = struct{}{}
	return true
}

func (h *Hub) remove(s *spectator) {
	h.mu.Lock()
	if _, ok := h.clients[s]; ok {
		delete(h.clients, s)
		close(s.send)
	}
	h.mu.Unlock()
	s.conn.CloseNow()
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every spectator without blocking.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.clients {
		select {
		case s.send <- msg:
		default:
			delete(h.clients, s)
			close(s.send)
			h.log.Warn("dropping slow spectator")
		}
	}
}

// Record implements sim.Sink.
func (h *Hub) Record(_ context.Context, runID uuid.UUID, ev sim.Event) error {
	h.Broadcast(Message{RunID: runID, Event: ev})
	return nil
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for s := range h.clients {
		delete(h.clients, s)
		conns = append(conns, s.conn)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.Close(websocket.StatusGoingAway, "Server shutting down.")
	}
}
