package ws

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

type userMessage struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans messages out to the websocket clients of one user. A user may
// hold several connections at once (one per tab or device).
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	send       chan userMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		send:       make(chan userMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := h.countLocked()
			h.mutex.Unlock()
			h.logf("WS connected | user_id=%s total_clients=%d", client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.removeLocked(client)
			total := h.countLocked()
			h.mutex.Unlock()
			h.logf("WS disconnected | user_id=%s total_clients=%d", client.userID, total)

		case msg := <-h.send:
			h.mutex.Lock()
			delivered := 0
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.payload:
					delivered++
				default:
					h.removeLocked(client)
				}
			}
			h.mutex.Unlock()
			h.logf("WS send | user_id=%s clients=%d", msg.userID, delivered)
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, set := range h.clients {
		for client := range set {
			close(client.send)
		}
	}
	h.clients = make(map[uuid.UUID]map[*Client]struct{})
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Register returns false when the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// SendToUser queues payload for every connection of userID. It never
// blocks; when the queue is full the message is dropped.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- userMessage{userID: userID, payload: payload}:
	default:
		h.logf("WS send dropped | user_id=%s reason=buffer_full", userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) UserClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
