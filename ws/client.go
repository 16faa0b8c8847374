package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tutorzindia/site/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 90 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 64
)

// conn is the part of *websocket.Conn a client uses.
type conn interface {
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one open admin tab.
type Client struct {
	hub    *Hub
	conn   conn
	userID string
	page   session.Page

	cell  *session.Cell
	guard *session.Guard

	send    chan []byte
	sendMu  sync.Mutex
	closed  bool
	writeMu sync.Mutex
}

func newClient(hub *Hub, c conn, userID string, page session.Page, cell *session.Cell) *Client {
	return &Client{
		hub:    hub,
		conn:   c,
		userID: userID,
		page:   page,
		cell:   cell,
		send:   make(chan []byte, sendBufferSize),
	}
}

// watch sends ready and starts the guard. A guard that has to move the tab
// queues the navigate event right away.
func (c *Client) watch() {
	c.sendEvent(Event{Op: OpReady, Data: ReadyData{
		Page:     string(c.page),
		SignedIn: c.cell.Current() != nil,
	}})

	c.guard = session.Watch(c.cell, c.page, func(route string) {
		c.sendEvent(Event{Op: OpNavigate, Data: NavigateData{Route: route}})
	})
}

// applySessionChange moves the cell and tells the tab about it.
func (c *Client) applySessionChange(event session.Event) {
	c.sendEvent(Event{Op: OpSessionChange, Data: SessionChangeData{Event: string(event)}})

	if event == session.SignedOut {
		c.cell.Set(session.SignedOut, nil)
		return
	}
	c.cell.Set(event, c.cell.Current())
}

// ReadPump reads frames until the connection fails. Only heartbeats are
// expected; each one extends the read deadline.
func (c *Client) ReadPump() {
	defer func() {
		if c.guard != nil {
			c.guard.Stop()
		}
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for user %q: %v", c.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("[ws] invalid message from user %q: %v", c.userID, err)
			continue
		}

		switch event.Op {
		case OpHeartbeat:
			if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				return
			}
			c.sendEvent(Event{Op: OpHeartbeatAck})
		default:
			log.Printf("[ws] unknown op from user %q: %s", c.userID, event.Op)
		}
	}
}

// WritePump writes queued frames until the send channel is closed.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.writeMessage(websocket.CloseMessage, nil)
}

func (c *Client) sendEvent(event Event) {
	event.Seq = c.hub.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event for user %q: %v", c.userID, err)
		return
	}
	c.enqueue(data)
}

// enqueue never blocks. A tab that cannot keep up is dropped.
func (c *Client) enqueue(data []byte) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("[ws] send buffer full for user %q, dropping connection", c.userID)
		c.hub.drop(c)
	}
}

func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) writeMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
