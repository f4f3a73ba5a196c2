package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/riskboard/riskboard/pkg/report"
)

const (
	writeTimeout = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10 // must be below pongWait
	sendBufSize  = 16
	maxFrameSize = 512
)

// subscribeRequest is the only frame clients send.
type subscribeRequest struct {
	Page string `json:"page"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	sub    report.PageID
	closed bool
}

func newClient(h *Hub, conn *websocket.Conn, page report.PageID) *client {
	return &client{hub: h, conn: conn, send: make(chan []byte, sendBufSize), sub: page}
}

func (c *client) page() report.PageID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sub
}

// enqueue queues data without blocking and reports whether it fit. A nil
// message, or one for a closed client, counts as delivered.
func (c *client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data == nil || c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close closes send once. Later enqueues are discarded.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump forwards queued messages and pings until send is closed or a
// write fails.
func (c *client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump handles pongs and subscription changes until the peer goes away.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.subscribe(raw)
	}
}

// subscribe switches the client to the requested page and answers with the
// page straight away. An empty page unsubscribes.
func (c *client) subscribe(raw []byte) {
	var req subscribeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.enqueue(errorMessage("invalid subscription: " + err.Error()))
		return
	}
	var page report.PageID
	if req.Page != "" {
		id, ok := report.ParsePageID(req.Page)
		if !ok {
			c.enqueue(errorMessage("unknown page " + req.Page))
			return
		}
		page = id
	}
	c.mu.Lock()
	c.sub = page
	c.mu.Unlock()
	c.enqueue(c.hub.message(page))
}
