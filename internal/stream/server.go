package stream

import (
	"encoding/json"
	"net/http"
	"time"
)

// Status is the JSON body served at /status.
type Status struct {
	Clients int    `json:"clients"`
	Live    int    `json:"live"`
	Tick    uint64 `json:"tick"`
}

// Status reports the hub's current counters.
func (h *Hub) Status() Status {
	h.pendingMu.Lock()
	tick := h.tick
	h.pendingMu.Unlock()
	return Status{Clients: h.Clients(), Live: h.Live(), Tick: tick}
}

// NewServer routes /ws to the hub and /status to a JSON summary.
func NewServer(addr string, hub *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hub.Status())
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
