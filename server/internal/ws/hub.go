package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/riskboard/riskboard/pkg/report"
	"github.com/riskboard/riskboard/server/internal/alerts"
	"github.com/riskboard/riskboard/server/internal/api"
	"github.com/riskboard/riskboard/server/internal/store"
)

// Events sent to clients.
const (
	// EventReport carries the summary (and the subscribed page) on connect,
	// on every publication and on every tick.
	EventReport = "report"
	// EventError answers a subscription request that could not be honoured.
	EventError = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// Origins are not checked; the report is public and read-only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string               `json:"event"`
	Data  api.SnapshotResponse `json:"data"`
	// Page is the built page the client subscribed to, if any.
	Page  *report.Page `json:"page,omitempty"`
	Error string       `json:"error,omitempty"`
}

// ClientObserver is told the client count whenever it changes.
// *metrics.Metrics satisfies it.
type ClientObserver interface {
	SetWSClients(n int)
}

// Hub pushes the published report to WebSocket clients. Each client may
// subscribe to one page, either with ?page=<id> on connect or later by
// sending {"page": "<id>"}.
type Hub struct {
	store    *store.Store
	alerts   *alerts.Engine
	interval time.Duration
	observer ClientObserver

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// New creates a Hub that reads from st. A non-positive interval disables
// periodic broadcasts. eng and obs may be nil.
func New(st *store.Store, eng *alerts.Engine, interval time.Duration, obs ClientObserver) *Hub {
	return &Hub{
		store:    st,
		alerts:   eng,
		interval: interval,
		observer: obs,
		clients:  make(map[*client]struct{}),
	}
}

// Run broadcasts every interval until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	var tick <-chan time.Time
	if h.interval > 0 {
		t := time.NewTicker(h.interval)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-tick:
			h.broadcast()
		}
	}
}

// Publish pushes the current report to every client now. Call it after each
// store.Put.
func (h *Hub) Publish() {
	h.broadcast()
}

// ServeHTTP upgrades the request and serves one client until it disconnects.
// An unknown ?page= is rejected with 400 before the upgrade.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var page report.PageID
	if q := r.URL.Query().Get("page"); q != "" {
		id, ok := report.ParsePageID(q)
		if !ok {
			http.Error(w, "unknown page "+q, http.StatusBadRequest)
			return
		}
		page = id
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // upgrader wrote the response
	}
	c := newClient(h, conn, page)
	h.register(c)
	defer h.unregister(c)

	c.enqueue(h.message(page))
	go c.writePump()
	c.readPump()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.observe(n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.observe(n)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
	h.observe(0)
}

func (h *Hub) observe(n int) {
	if h.observer != nil {
		h.observer.SetWSClients(n)
	}
}

// broadcast encodes one message per subscribed page and queues it for every
// client. Clients whose buffer is full are dropped.
func (h *Hub) broadcast() {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	encoded := make(map[report.PageID][]byte)
	for _, c := range targets {
		page := c.page()
		data, ok := encoded[page]
		if !ok {
			data = h.message(page)
			encoded[page] = data
		}
		if !c.enqueue(data) {
			slog.Warn("ws: dropping slow client", "page", page)
			h.unregister(c)
		}
	}
}

// message encodes the current summary plus page, or nil when encoding fails.
func (h *Hub) message(page report.PageID) []byte {
	msg := Message{Event: EventReport, Data: api.BuildSnapshot(h.store, h.alerts)}
	if page != "" {
		if e, ok := h.store.Current(); ok {
			msg.Page, _ = e.Report.Page(page)
		}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws: encode message", "err", err)
		return nil
	}
	return data
}

func errorMessage(text string) []byte {
	data, _ := json.Marshal(Message{Event: EventError, Error: text})
	return data
}
