package websocket

import (
	"encoding/json"
	"sync"
)

// TransactionUpdate is pushed to the transaction owner when a record is
// created, changed, or moved through the approval workflow.
type TransactionUpdate struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Event  string `json:"event"`
	By     string `json:"by"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(username string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[username] == nil {
		h.clients[username] = make(map[*Client]struct{})
	}
	h.clients[username][client] = struct{}{}
}

func (h *Hub) Unregister(username string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[username] == nil {
		return
	}
	delete(h.clients[username], client)
	if len(h.clients[username]) == 0 {
		delete(h.clients, username)
	}
}

// BroadcastTransaction delivers update to every open connection of the
// named user. Slow clients are skipped rather than blocked on.
func (h *Hub) BroadcastTransaction(username string, update TransactionUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[username] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
