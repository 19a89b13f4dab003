// Package stream publishes extracted collider geometry to websocket clients.
package stream

import (
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"sandfall/internal/collider"
)

// Event ops.
const (
	OpSpawn   = "spawn"
	OpDespawn = "despawn"
)

// Event is a single geometry change.
type Event struct {
	Op       string       `json:"op"`
	ID       uint64       `json:"id"`
	Chunk    int          `json:"chunk,omitempty"`
	Category string       `json:"category,omitempty"`
	Sensor   bool         `json:"sensor,omitempty"`
	Points   [][2]float32 `json:"points,omitempty"`
}

// Frame batches the events of one tick. The first frame a client receives
// is a snapshot of all live geometry.
type Frame struct {
	Tick     uint64  `json:"tick"`
	Snapshot bool    `json:"snapshot,omitempty"`
	Events   []Event `json:"events"`
}

// Hub is a collider.Sink that fans geometry changes out to every connected
// websocket client. Changes are queued by Spawn/Despawn and sent by Flush.
type Hub struct {
	upgrader websocket.Upgrader
	shapes   *collider.Registry
	log      *log.Logger

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	pendingMu sync.Mutex
	pending   []Event
	tick      uint64
}

// NewHub returns a hub with no clients. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		shapes:  collider.NewRegistry(),
		log:     logger,
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Spawn records the polyline and queues a spawn event.
func (h *Hub) Spawn(key collider.Key, line collider.Polyline, sensor bool) collider.Handle {
	handle := h.shapes.Spawn(key, line, sensor)
	h.pendingMu.Lock()
	h.pending = append(h.pending, spawnEvent(collider.Shape{Handle: handle, Key: key, Line: line, Sensor: sensor}))
	h.pendingMu.Unlock()
	return handle
}

// Despawn forgets the polyline and queues a despawn event.
func (h *Hub) Despawn(handle collider.Handle) {
	h.shapes.Despawn(handle)
	h.pendingMu.Lock()
	h.pending = append(h.pending, Event{Op: OpDespawn, ID: uint64(handle)})
	h.pendingMu.Unlock()
}

func spawnEvent(s collider.Shape) Event {
	pts := make([][2]float32, len(s.Line))
	for i, p := range s.Line {
		pts[i] = [2]float32{p.X(), p.Y()}
	}
	return Event{
		Op:       OpSpawn,
		ID:       uint64(s.Handle),
		Chunk:    s.Key.Chunk,
		Category: s.Key.Category.String(),
		Sensor:   s.Sensor,
		Points:   pts,
	}
}

// Live returns the number of polylines currently published.
func (h *Hub) Live() int { return h.shapes.Len() }

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Flush broadcasts the queued events as one frame. It is a no-op when
// nothing changed.
func (h *Hub) Flush(tick uint64) {
	h.pendingMu.Lock()
	events := h.pending
	h.pending = nil
	h.tick = tick
	h.pendingMu.Unlock()
	if len(events) == 0 {
		return
	}
	h.broadcast(Frame{Tick: tick, Events: events})
}

func (h *Hub) broadcast(frame Frame) {
	h.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, mu := range h.clients {
		mu.Lock()
		err := conn.WriteJSON(frame)
		mu.Unlock()
		if err != nil {
			h.log.Warn("websocket write failed", "remote", conn.RemoteAddr(), "error", err)
			conn.Close()
			failed = append(failed, conn)
		}
	}
	h.clientsMu.RUnlock()

	if len(failed) > 0 {
		h.clientsMu.Lock()
		for _, conn := range failed {
			delete(h.clients, conn)
		}
		h.clientsMu.Unlock()
	}
}

// ServeHTTP upgrades the request, sends a snapshot of the live geometry and
// keeps the connection registered until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	mu := &sync.Mutex{}
	// Hold the pending lock so no frame can be flushed between the snapshot
	// and registration. Queued spawns are left to the next flush; queued
	// despawns may then name shapes this client never saw.
	h.pendingMu.Lock()
	snap := Frame{Tick: h.tick, Snapshot: true, Events: []Event{}}
	for _, s := range h.shapes.Shapes() {
		snap.Events = append(snap.Events, spawnEvent(s))
	}
	for _, ev := range h.pending {
		if ev.Op == OpSpawn {
			snap.Events = removeSpawn(snap.Events, ev.ID)
		}
	}
	mu.Lock()
	err = conn.WriteJSON(snap)
	mu.Unlock()
	if err == nil {
		h.clientsMu.Lock()
		h.clients[conn] = mu
		h.clientsMu.Unlock()
	}
	h.pendingMu.Unlock()
	if err != nil {
		h.log.Warn("websocket snapshot failed", "error", err)
		return
	}
	h.log.Info("client connected", "remote", conn.RemoteAddr(), "clients", h.Clients())

	defer func() {
		h.clientsMu.Lock()
		delete(h.clients, conn)
		h.clientsMu.Unlock()
		h.log.Info("client disconnected", "remote", conn.RemoteAddr())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func removeSpawn(events []Event, id uint64) []Event {
	out := events[:0]
	for _, ev := range events {
		if ev.Op == OpSpawn && ev.ID == id {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
