package progressws

import (
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"
)

// Hub pushes import progress events to each user's open connections. Traffic
// is one way; clients only listen.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan *event
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

type Message struct {
	Type     string `json:"type"`
	Imported int    `json:"imported,omitempty"`
	Skipped  int    `json:"skipped,omitempty"`
	Done     int    `json:"done"`
	Total    int    `json:"total"`
}

type event struct {
	userID  string
	message *Message
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case ev := <-h.events:
			h.deliver(ev)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish queues a message for every connection the user has open. It never
// blocks the caller; with the event queue full the message is dropped.
func (h *Hub) Publish(userID string, message *Message) {
	select {
	case h.events <- &event{userID: userID, message: message}:
	default:
	}
}

func (h *Hub) deliver(ev *event) {
	payload, err := json.Marshal(ev.message)
	if err != nil {
		log.Printf("progress hub encode message: %v", err)
		return
	}

	set, ok := h.clients[ev.userID]
	if !ok {
		return
	}
	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, ev.userID)
	}
}

// ReadPump drains the connection until the peer goes away. Incoming payloads
// are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
