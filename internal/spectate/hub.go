// Package spectate streams game snapshots to websocket viewers. The Hub is
// a scheduler.Surface: every Nth frame it encodes the snapshot once and
// hands it to each connected viewer without blocking the frame loop.
package spectate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-cannon/internal/cannon"
	"github.com/vovakirdan/tui-cannon/internal/scheduler"
)

const (
	defaultBufferSize = 16
	writeTimeout      = 5 * time.Second
)

// Message is the JSON document sent to viewers.
type Message struct {
	Type     string          `json:"type"`
	Frame    uint64          `json:"frame"`
	Snapshot cannon.Snapshot `json:"snapshot"`
}

// Hub tracks connected viewers and broadcasts snapshots to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client

	every      uint64
	bufferSize int
	frames     atomic.Uint64
	logger     *log.Logger
}

// NewHub creates a hub that broadcasts every Nth frame. every < 1 means every frame.
func NewHub(every int, logger *log.Logger) *Hub {
	if every < 1 {
		every = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[string]*client),
		every:      uint64(every),
		bufferSize: defaultBufferSize,
		logger:     logger,
	}
}

// ServeHTTP upgrades the request to a websocket and streams snapshots until
// the viewer disconnects. Anything the viewer sends is ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Viewers are read-only
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.CloseNow()

	c := newClient(uuid.NewString(), h.bufferSize)
	h.register(c)
	defer h.unregister(c)

	h.logger.Info("spectator connected", "id", c.id, "remote", r.RemoteAddr)
	defer h.logger.Info("spectator disconnected", "id", c.id)

	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case data := <-c.send:
			if err := h.write(ctx, conn, data); err != nil {
				h.logger.Debug("spectator write failed", "id", c.id, "error", err)
				return
			}
		case <-c.done:
			conn.Close(websocket.StatusGoingAway, "hub closed")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

// Acquire implements scheduler.Surface. Frames between broadcasts and frames
// with no viewers report ErrSurfaceUnavailable.
func (h *Hub) Acquire() (scheduler.Frame, error) {
	n := h.frames.Add(1)
	if n%h.every != 0 || h.Clients() == 0 {
		return nil, scheduler.ErrSurfaceUnavailable
	}
	return &frame{hub: h, n: n}, nil
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.close()
		delete(h.clients, id)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
	c.close()
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.offer(data)
	}
}

type frame struct {
	hub *Hub
	n   uint64
}

func (f *frame) Draw(snap cannon.Snapshot) error {
	data, err := json.Marshal(Message{Type: "snapshot", Frame: f.n, Snapshot: snap})
	if err != nil {
		return fmt.Errorf("spectate: encode snapshot: %w", err)
	}
	f.hub.broadcast(data)
	return nil
}

// Post is a no-op: the encoded frame is already queued per viewer.
func (f *frame) Post() {}

// client is one viewer's outbound queue.
type client struct {
	id       string
	send     chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

func newClient(id string, size int) *client {
	return &client{
		id:   id,
		send: make(chan []byte, size),
		done: make(chan struct{}),
	}
}

// offer queues data without blocking. A slow viewer loses its oldest frame.
func (c *client) offer(data []byte) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- data:
	default:
		select {
		case <-c.send:
		default:
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (c *client) close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
