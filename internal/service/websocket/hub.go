package websocket

import (
	"context"
	"sync"
	"time"

	"roadcheck/internal/logger"

	"github.com/gorilla/websocket"
)

// DefaultWriteTimeout bounds a single write to one viewer.
const DefaultWriteTimeout = 10 * time.Second

// HubService fans frames out to connected viewers. The last broadcast message
// is replayed to every viewer that registers afterwards.
type HubService struct {
	clients      map[*websocket.Conn]bool
	broadcast    chan []byte
	register     chan *websocket.Conn
	unregister   chan *websocket.Conn
	latest       []byte
	done         chan struct{}
	writeTimeout time.Duration
	mutex        sync.RWMutex
	logger       *logger.Logger
}

func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		clients:      make(map[*websocket.Conn]bool),
		broadcast:    make(chan []byte),
		register:     make(chan *websocket.Conn),
		unregister:   make(chan *websocket.Conn),
		done:         make(chan struct{}),
		writeTimeout: DefaultWriteTimeout,
		logger:       logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled,
// then closes every remaining connection.
func (h *HubService) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			latest := h.latest
			h.mutex.Unlock()
			h.logger.Info("Viewer connected. Total: %d", h.GetClientCount())

			if latest != nil {
				h.send(client, latest)
			}

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			h.logger.Info("Viewer disconnected. Total: %d", h.GetClientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			h.latest = message
			clients := make([]*websocket.Conn, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mutex.Unlock()

			for _, client := range clients {
				h.send(client, message)
			}
		}
	}
}

// SetWriteTimeout changes the per-viewer write deadline. Call it before Run.
func (h *HubService) SetWriteTimeout(d time.Duration) {
	h.writeTimeout = d
}

// send writes one message and drops the client on failure or when the
// viewer does not drain it within the write timeout.
func (h *HubService) send(client *websocket.Conn, message []byte) {
	client.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
		h.logger.Error("Error sending message: %v", err)
		h.mutex.Lock()
		delete(h.clients, client)
		h.mutex.Unlock()
		client.Close()
	}
}

// Register adds a viewer. It is a no-op once Run has returned.
func (h *HubService) Register(client *websocket.Conn) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister removes a viewer. It is a no-op once Run has returned.
func (h *HubService) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends message to all viewers and keeps it for late joiners.
func (h *HubService) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
