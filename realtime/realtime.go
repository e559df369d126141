package realtime

import (
	"log"
	"sync"

	"twinclash-api/metrics"
	"twinclash-api/models"
)

// RoomSnapshot is one delivery to an observer: the full current row, or a
// null room when the row disappeared (expiry or delete). Consumers must treat
// every delivery as a replacement snapshot, never a diff.
type RoomSnapshot struct {
	RoomCode string           `json:"room_code"`
	Room     *models.DuelRoom `json:"room"`
}

// Conn is the write side of one subscriber. *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub fans duel-room snapshots out to WebSocket observers, keyed by room
// code. It is constructed once in main and injected where needed.
type Hub struct {
	mu        sync.Mutex
	observers map[string]map[Conn]bool
	broadcast chan RoomSnapshot
}

func NewHub() *Hub {
	h := &Hub{
		observers: make(map[string]map[Conn]bool),
		broadcast: make(chan RoomSnapshot, 64),
	}
	go h.handleBroadcast()
	return h
}

// Subscribe adds an observer for a specific room code
func (h *Hub) Subscribe(roomCode string, conn Conn) {
	h.mu.Lock()
	if h.observers[roomCode] == nil {
		h.observers[roomCode] = make(map[Conn]bool)
	}
	h.observers[roomCode][conn] = true
	h.mu.Unlock()
	metrics.RealtimeSubscribers.Inc()
}

// Unsubscribe removes an observer for a specific room code
func (h *Hub) Unsubscribe(roomCode string, conn Conn) {
	h.mu.Lock()
	if conns, exists := h.observers[roomCode]; exists {
		if conns[conn] {
			delete(conns, conn)
			metrics.RealtimeSubscribers.Dec()
		}
		if len(conns) == 0 {
			delete(h.observers, roomCode)
		}
	}
	h.mu.Unlock()
}

// PublishRoom delivers the latest row to every observer of its code. A nil
// room is delivered as a null snapshot (row deleted or expired away).
func (h *Hub) PublishRoom(roomCode string, room *models.DuelRoom) {
	h.broadcast <- RoomSnapshot{RoomCode: roomCode, Room: room}
}

func (h *Hub) handleBroadcast() {
	for snap := range h.broadcast {
		h.mu.Lock()
		if conns, exists := h.observers[snap.RoomCode]; exists {
			for conn := range conns {
				if err := conn.WriteJSON(snap); err != nil {
					log.Printf("[realtime] write error, dropping observer: %v", err)
					conn.Close()
					delete(conns, conn)
					metrics.RealtimeSubscribers.Dec()
				}
			}
		}
		h.mu.Unlock()
	}
}
