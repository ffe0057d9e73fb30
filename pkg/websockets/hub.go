package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections by default for local development.
		return true
	},
}

// Hub is the in-process dashboard feed used by the local server. Each
// connected client is tracked by ID.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
	logger  *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{clients: make(map[string]*websocket.Conn), logger: logger}
}

// Make sure we conform to the interface
var _ Publisher = (*Hub)(nil)

// Publish writes message to every connected client. Clients that fail the
// write are dropped.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.WarnContext(ctx, "dropping dashboard client", "connectionId", id, "error", err)
			conn.Close()
			delete(h.clients, id)
		}
	}
	return nil
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the client registered until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	connectionID := uuid.New().String()
	h.mu.Lock()
	h.clients[connectionID] = conn
	h.mu.Unlock()
	h.logger.Info("dashboard client connected", "connectionId", connectionID)

	defer func() {
		h.mu.Lock()
		if c, ok := h.clients[connectionID]; ok {
			c.Close()
			delete(h.clients, connectionID)
		}
		h.mu.Unlock()
		h.logger.Info("dashboard client disconnected", "connectionId", connectionID)
	}()

	// Clients never send data; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("unexpected close error", "connectionId", connectionID, "error", err)
			}
			return
		}
	}
}
