// Package reload pushes reload signals to browsers while the dev server runs.
package reload

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/okian/webbasics/pkg/logger"
	"github.com/okian/webbasics/pkg/metrics"
)

// Path is where browsers connect to wait for reload signals.
const Path = "/__reload"

// Message is sent to every client when the page should reload.
const Message = "reload"

// Hub tracks connected browsers and broadcasts reload signals to them.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewHub creates an empty hub.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// Dev-only endpoint; pages may be served under any host name.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// ServeHTTP upgrades the request and keeps the connection until the browser leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.log.Debug(r.Context(), "live reload upgrade failed", logger.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	metrics.UpdateLiveReloadClients(len(h.clients))
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	_ = conn.Close()
	metrics.UpdateLiveReloadClients(len(h.clients))
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends Message to every client, dropping those that fail.
func (h *Hub) Broadcast(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(Message)); err != nil {
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
	metrics.UpdateLiveReloadClients(len(h.clients))
	metrics.RecordLiveReloadBroadcast()
	h.log.Debug(ctx, "live reload broadcast", logger.Int("clients", len(h.clients)))
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), deadline())
		_ = conn.Close()
		delete(h.clients, conn)
	}
	metrics.UpdateLiveReloadClients(0)
}
