package notify

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

const messageTypeGoal = "goal"

// GoalMessage is the frame pushed to WebSocket subscribers.
type GoalMessage struct {
	Type      string       `json:"type"`
	GameID    watch.GameID `json:"game_id"`
	Goal      watch.Goal   `json:"goal"`
	Timestamp time.Time    `json:"timestamp"`
}

// Hub tracks WebSocket subscribers and broadcasts goals to them. Slow
// subscribers whose buffer is full are disconnected.
type Hub struct {
	ctx      context.Context
	logger   *slog.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub builds a hub whose connections live until ctx is done.
// checkOrigin may be nil to accept every origin.
func NewHub(ctx context.Context, logger *slog.Logger, checkOrigin func(*http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		ctx:    ctx,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		now:     time.Now,
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(h.logger, "websocket upgrade failed", logging.FieldError, err)
		return
	}
	c := newClient(uuid.NewString(), conn, h)
	h.register(c)

	go c.writePump(h.ctx)
	go c.readPump()
}

// ClientCount is the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) PublishGoals(_ context.Context, id watch.GameID, goals []watch.Goal) error {
	for _, g := range goals {
		frame, err := json.Marshal(GoalMessage{
			Type:      messageTypeGoal,
			GameID:    id,
			Goal:      g,
			Timestamp: h.now().UTC(),
		})
		if err != nil {
			return err
		}
		h.broadcast(frame)
	}
	return nil
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(frame []byte) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.trySend(frame) {
			logging.Warn(h.logger, "websocket client too slow, disconnecting", "client_id", c.id)
			h.unregister(c)
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Info(h.logger, "websocket client connected", "client_id", c.id, logging.FieldCount, n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		logging.Info(h.logger, "websocket client disconnected", "client_id", c.id, logging.FieldCount, n)
	}
}
