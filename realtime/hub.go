// Package realtime fans seat-state transitions out to connected admin
// clients. Rooms group clients; delivery is best-effort with no ordering
// across senders, and a disconnected or slow client simply misses events
// until its next full seat-grid read. The hub persists nothing; it relays on top
// of the booking writes, it does not replace them.
package realtime

import "context"

// SeatEvent is the payload relayed between clients.
type SeatEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Seat   string `json:"seat"`
	Shift  string `json:"shift"`
}

// Envelope is the wire frame. Inbound events: joinRoom, joinSeatsRoom,
// updateSeatStatus. Outbound: seatStatusUpdate.
type Envelope struct {
	Event string     `json:"event"`
	Room  string     `json:"room,omitempty"`
	Data  *SeatEvent `json:"data,omitempty"`
}

const (
	EventJoinRoom         = "joinRoom"
	EventJoinSeatsRoom    = "joinSeatsRoom"
	EventUpdateSeatStatus = "updateSeatStatus"
	EventSeatStatusUpdate = "seatStatusUpdate"
)

type subscription struct {
	client *Client
	room   string
}

type message struct {
	// room may be empty: then the payload goes to every room the sender
	// has joined.
	room    string
	sender  *Client
	payload []byte
}

// Hub owns room membership. All map access happens on the Run goroutine;
// clients talk to it through channels only.
type Hub struct {
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]map[string]struct{}

	register   chan *Client
	unregister chan *Client
	join       chan subscription
	broadcast  chan message
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]map[string]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan subscription),
		broadcast:  make(chan message, 16),
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

func (h *Hub) Join(c *Client, room string) {
	h.join <- subscription{client: c, room: room}
}

// Broadcast relays payload to every member of room except sender. With an
// empty room it targets every room the sender has joined, mirroring the
// relay behavior the admin clients expect.
func (h *Hub) Broadcast(room string, sender *Client, payload []byte) {
	h.broadcast <- message{room: room, sender: sender, payload: payload}
}

// Run serves hub traffic until ctx is cancelled. Start exactly once.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return ctx.Err()

		case c := <-h.register:
			h.clients[c] = make(map[string]struct{})

		case c := <-h.unregister:
			h.drop(c)

		case sub := <-h.join:
			if _, ok := h.clients[sub.client]; !ok {
				continue
			}
			h.clients[sub.client][sub.room] = struct{}{}
			if h.rooms[sub.room] == nil {
				h.rooms[sub.room] = make(map[*Client]struct{})
			}
			h.rooms[sub.room][sub.client] = struct{}{}

		case msg := <-h.broadcast:
			if msg.room != "" {
				h.relay(msg.room, msg.sender, msg.payload)
				continue
			}
			for room := range h.clients[msg.sender] {
				h.relay(room, msg.sender, msg.payload)
			}
		}
	}
}

func (h *Hub) relay(room string, sender *Client, payload []byte) {
	for c := range h.rooms[room] {
		if c == sender {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Slow consumer: drop it rather than block the hub.
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *Client) {
	rooms, ok := h.clients[c]
	if !ok {
		return
	}
	for room := range rooms {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.clients, c)
	close(c.send)
}
