package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/scorebook/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var (
	// ErrHubBusy is returned by Publish when the broadcast queue is full.
	ErrHubBusy = errors.New("live hub broadcast queue is full")
	// ErrHubClosed is returned by ServeMatch once Run has returned.
	ErrHubClosed = errors.New("live hub is closed")
)

// Client is one websocket viewer of a single match.
type Client struct {
	id      string
	matchID uint
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
}

// Hub keeps the websocket viewers of every match and fans events out to
// the viewers of the event's match.
type Hub struct {
	upgrader   websocket.Upgrader
	clients    map[uint]map[*Client]struct{}
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewHub creates a hub. allowedOrigin "*" or "" accepts any origin.
func NewHub(allowedOrigin string, logger *zap.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
		clients:    make(map[uint]map[*Client]struct{}),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    m,
	}
}

// Run serves registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			viewers, ok := h.clients[client.matchID]
			if !ok {
				viewers = make(map[*Client]struct{})
				h.clients[client.matchID] = viewers
			}
			viewers[client] = struct{}{}
			h.mu.Unlock()
			h.metrics.ClientConnected()
			h.logger.Debug("live client registered", zap.String("client_id", client.id), zap.Uint("match_id", client.matchID))

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Publish queues an event for the viewers of its match. It never blocks.
func (h *Hub) Publish(_ context.Context, event Event) error {
	select {
	case h.broadcast <- event:
		return nil
	default:
		return ErrHubBusy
	}
}

// ClientCount is the number of viewers of a match.
func (h *Hub) ClientCount(matchID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[matchID])
}

// ServeMatch upgrades the request and attaches the connection to matchID.
func (h *Hub) ServeMatch(w http.ResponseWriter, r *http.Request, matchID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		id:      uuid.NewString(),
		matchID: matchID,
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return ErrHubClosed
	}

	go client.writePump()
	go client.readPump()
	return nil
}

func (h *Hub) deliver(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal live event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.clients[event.MatchID] {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("dropping slow live client", zap.String("client_id", client.id), zap.Uint("match_id", client.matchID))
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	viewers, ok := h.clients[client.matchID]
	if ok {
		if _, ok = viewers[client]; ok {
			delete(viewers, client)
			close(client.send)
			if len(viewers) == 0 {
				delete(h.clients, client.matchID)
			}
		}
	}
	h.mu.Unlock()

	if ok {
		h.metrics.ClientDisconnected()
		h.logger.Debug("live client unregistered", zap.String("client_id", client.id), zap.Uint("match_id", client.matchID))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for matchID, viewers := range h.clients {
		for client := range viewers {
			close(client.send)
			h.metrics.ClientDisconnected()
		}
		delete(h.clients, matchID)
	}
}

// readPump only watches for close and pong frames; viewers never send data.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("live client read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
