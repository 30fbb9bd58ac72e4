package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/zaqqye/evaluasi_backend/internal/editor"
	"github.com/zaqqye/evaluasi_backend/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

type EventType string

const (
	EventRosterCommitted EventType = "roster_committed"
	EventNotice          EventType = "notice"
	// the live session was replaced or logged out; clients should drop
	// their token
	EventSessionEnded EventType = "session_ended"
)

// Event is the only message shape pushed to dashboard clients.
type Event struct {
	Type      EventType  `json:"type"`
	Subject   string     `json:"subject,omitempty"`
	Message   string     `json:"message,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type message struct {
	// empty means every client
	subject string
	payload []byte
	// retire closes every delivered client not opened under keep
	retire bool
	keep   string
}

// Hub fans editor events out to connected dashboards. Notices only reach
// clients of the subject they were posted for; commits and session events
// reach everyone.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan message
	clients    map[*client]struct{}
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan message, 256),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
		log:        logger.Component("ws"),
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			close(h.done)
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if msg.subject != "" && c.subject != msg.subject {
					continue
				}
				select {
				case c.send <- msg.payload:
					if msg.retire && (msg.keep == "" || c.session != msg.keep) {
						h.retire(c)
					}
				default:
					h.drop(c)
				}
			}
		}
	}
}

// join registers c; it reports false once the hub has stopped.
func (h *Hub) join(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	c.conn.Close()
}

// retire unregisters c and lets its write pump flush what is queued before
// closing the connection.
func (h *Hub) retire(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// Broadcast queues ev for delivery. A nil hub discards it.
func (h *Hub) Broadcast(ev Event) {
	h.enqueue(ev, func(*message) {})
}

func (h *Hub) enqueue(ev Event, set func(*message)) {
	if h == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal event")
		return
	}
	msg := message{payload: data}
	if ev.Type == EventNotice {
		msg.subject = ev.Subject
	}
	set(&msg)
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("type", string(ev.Type)).Msg("Broadcast queue full, event dropped")
	}
}

func (h *Hub) NoticePosted(subject string, n editor.Notice) {
	expires := n.ExpiresAt
	h.Broadcast(Event{Type: EventNotice, Subject: subject, Message: n.Message, ExpiresAt: &expires})
}

func (h *Hub) RosterCommitted(subject string) {
	h.Broadcast(Event{Type: EventRosterCommitted, Subject: subject})
}

// SessionEnded tells every client the previous session is over and then
// closes the connections not opened under live, the id of the session now
// in force. An empty live closes them all.
func (h *Hub) SessionEnded(live string) {
	h.enqueue(Event{Type: EventSessionEnded}, func(m *message) {
		m.retire = true
		m.keep = live
	})
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	subject string
	session string
}

func newClient(hub *Hub, conn *websocket.Conn, subject, session string) *client {
	return &client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		subject: subject,
		session: session,
	}
}

func (c *client) readPump() {
	defer c.hub.leave(c)
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
