package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"github.com/tutorzindia/site/session"
)

// EventPublisher is what services use to reach the open tabs. Both Hub and
// RedisRelay implement it.
type EventPublisher interface {
	// PublishSessionChange applies a session transition to every tab of userID.
	PublishSessionChange(userID string, event session.Event)
	// PublishContentUpdate tells every signed-in tab that collection changed.
	PublishContentUpdate(collection string)
}

// anonymous is the key of connections opened without a valid token.
const anonymous = ""

// Hub tracks the open connections, grouped by user. One user can have
// several tabs open.
type Hub struct {
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	quitOnce   sync.Once

	seq atomic.Int64
}

// NewHub returns a hub. Run must be started before connections arrive.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
}

// Run serializes registration until Shutdown.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.quit:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	log.Printf("[ws] client connected: user=%q page=%s (connections for user: %d)",
		client.userID, client.page, len(h.clients[client.userID]))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.close()

	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
	log.Printf("[ws] client disconnected: user=%q (remaining: %d)", client.userID, len(clients))
}

// PublishSessionChange moves the cell of every tab of userID. The guards on
// those cells decide whether the tab navigates.
func (h *Hub) PublishSessionChange(userID string, event session.Event) {
	if userID == anonymous {
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		client.applySessionChange(event)
	}
}

// PublishContentUpdate broadcasts a content_update to every signed-in tab.
func (h *Hub) PublishContentUpdate(collection string) {
	h.broadcast(func(userID string) bool { return userID != anonymous }, Event{
		Op:   OpContentUpdate,
		Data: ContentUpdateData{Collection: collection},
	})
}

func (h *Hub) broadcast(match func(userID string) bool, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, clients := range h.clients {
		if !match(userID) {
			continue
		}
		for client := range clients {
			client.enqueue(data)
		}
	}
}

// ConnectionCount returns the number of open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

// Shutdown closes every connection and stops Run.
func (h *Hub) Shutdown() {
	h.quitOnce.Do(func() {
		close(h.quit)

		h.mu.Lock()
		defer h.mu.Unlock()

		for _, clients := range h.clients {
			for client := range clients {
				client.close()
			}
		}
		h.clients = make(map[string]map[*Client]bool)
		log.Println("[ws] hub shut down, all connections closed")
	})
}

// drop schedules client for removal without blocking the caller.
func (h *Hub) drop(client *Client) {
	go func() {
		select {
		case h.unregister <- client:
		case <-h.quit:
		}
	}()
}
