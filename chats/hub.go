package chats

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	TripID string
	UserID string
}

type broadcastMsg struct {
	TripID string
	Data   []byte
}

// Hub fans messages out to every client connected to the same trip.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.TripID] == nil {
				h.rooms[c.TripID] = make(map[*Client]bool)
			}
			h.rooms[c.TripID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.TripID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.TripID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.TripID], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast sends data to every client in the trip's room. Safe to call
// from HTTP handlers: it never blocks past the hub loop.
func (h *Hub) Broadcast(tripID string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{TripID: tripID, Data: data}:
	case <-h.done:
	}
}
