package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/report"
	"github.com/riskboard/riskboard/server/internal/store"
	wsHub "github.com/riskboard/riskboard/server/internal/ws"
)

const testInterval = 20 * time.Millisecond

// --- helpers ----------------------------------------------------------------

func buildReport(t *testing.T, title string) *report.Report {
	t.Helper()
	opts := report.DefaultOptions()
	opts.Title = title
	r, err := report.Build(dataset.New(), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func newStore(t *testing.T, titles ...string) *store.Store {
	t.Helper()
	st := store.New(5)
	for _, title := range titles {
		st.Put(buildReport(t, title), "startup")
	}
	return st
}

type countObserver struct {
	mu   sync.Mutex
	last int
}

func (o *countObserver) SetWSClients(n int) {
	o.mu.Lock()
	o.last = n
	o.mu.Unlock()
}

func (o *countObserver) get() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// startHub starts a test HTTP server with the hub as its handler.
// The hub's Run loop is started with a cancellable context.
func startHub(t *testing.T, st *store.Store, interval time.Duration, obs wsHub.ClientObserver) (wsURL string, hub *wsHub.Hub, cancel func()) {
	t.Helper()

	hub = wsHub.New(st, nil, interval, obs)
	ctx, cancelFn := context.WithCancel(context.Background())

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	go hub.Run(ctx)

	t.Cleanup(func() {
		cancelFn()
		srv.Close()
	})

	wsURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	return wsURL, hub, cancelFn
}

// dial connects a WebSocket client to wsURL and returns the connection.
func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readMessage reads and decodes one message from conn with a short deadline.
func readMessage(t *testing.T, conn *websocket.Conn) wsHub.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var m wsHub.Message
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

// --- tests ------------------------------------------------------------------

func TestHub_Connect_ReceivesImmediateReport(t *testing.T) {
	wsURL, _, _ := startHub(t, newStore(t, "first"), testInterval, nil)

	m := readMessage(t, dial(t, wsURL))
	if m.Event != wsHub.EventReport {
		t.Errorf("event: got %q, want %q", m.Event, wsHub.EventReport)
	}
	if m.Data.Title != "first" || m.Data.Revision != 1 {
		t.Errorf("data: got title=%q rev=%d", m.Data.Title, m.Data.Revision)
	}
	if len(m.Data.Strategy) != 8 || len(m.Data.Pages) != 5 {
		t.Errorf("data: got strategy=%d pages=%d", len(m.Data.Strategy), len(m.Data.Pages))
	}
	if m.Data.GeneratedAt == "" {
		t.Error("generated_at: missing")
	}
}

func TestHub_EmptyStore(t *testing.T) {
	wsURL, _, _ := startHub(t, newStore(t), testInterval, nil)
	m := readMessage(t, dial(t, wsURL))
	if m.Data.Revision != 0 || len(m.Data.Strategy) != 0 {
		t.Errorf("data: got rev=%d strategy=%d, want empty", m.Data.Revision, len(m.Data.Strategy))
	}
}

func TestHub_CountClients(t *testing.T) {
	obs := &countObserver{}
	wsURL, hub, _ := startHub(t, newStore(t, "r"), time.Hour, obs)

	conns := make([]*websocket.Conn, 3)
	for i := range conns {
		conns[i] = dial(t, wsURL)
		readMessage(t, conns[i])
	}

	time.Sleep(10 * time.Millisecond)
	if n := hub.Count(); n != 3 {
		t.Errorf("Count: got %d, want 3", n)
	}
	if n := obs.get(); n != 3 {
		t.Errorf("observer: got %d, want 3", n)
	}

	conns[0].Close()
	time.Sleep(50 * time.Millisecond) // let readPump detect the close
	if n := hub.Count(); n != 2 {
		t.Errorf("Count after disconnect: got %d, want 2", n)
	}
	if n := obs.get(); n != 2 {
		t.Errorf("observer after disconnect: got %d, want 2", n)
	}
}

func TestHub_ReceivesBroadcastOnTick(t *testing.T) {
	st := newStore(t)
	wsURL, _, _ := startHub(t, st, testInterval, nil)

	conn := dial(t, wsURL)
	readMessage(t, conn) // consume the empty initial message

	st.Put(buildReport(t, "late"), "reload")

	// Ticks already queued may still carry the empty store.
	for i := 0; i < 20; i++ {
		m := readMessage(t, conn)
		if m.Data.Revision == 1 {
			if m.Data.Title != "late" {
				t.Errorf("tick broadcast: got title=%q, want late", m.Data.Title)
			}
			return
		}
	}
	t.Fatal("no broadcast carried the published report")
}

func TestHub_PublishWithoutTicker(t *testing.T) {
	st := newStore(t, "first")
	wsURL, hub, _ := startHub(t, st, 0, nil)

	conn := dial(t, wsURL)
	readMessage(t, conn)
	time.Sleep(10 * time.Millisecond)

	st.Put(buildReport(t, "second"), "reload")
	hub.Publish()

	m := readMessage(t, conn)
	if m.Data.Title != "second" || m.Data.Revision != 2 {
		t.Errorf("published: got title=%q rev=%d", m.Data.Title, m.Data.Revision)
	}
	if len(m.Data.History) != 2 {
		t.Errorf("history: got %d, want 2", len(m.Data.History))
	}
}

func TestHub_CancelContextClosesConnections(t *testing.T) {
	wsURL, hub, cancel := startHub(t, newStore(t), testInterval, nil)

	conn := dial(t, wsURL)
	readMessage(t, conn)
	time.Sleep(10 * time.Millisecond)

	cancel()

	time.Sleep(50 * time.Millisecond)
	if n := hub.Count(); n != 0 {
		t.Errorf("Count after cancel: got %d, want 0", n)
	}
}

func TestHub_NonWebSocketRequest_Returns400(t *testing.T) {
	hub := wsHub.New(newStore(t), nil, testInterval, nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestHub_PageQuerySubscribes(t *testing.T) {
	wsURL, _, _ := startHub(t, newStore(t, "paged"), 0, nil)

	conn := dial(t, wsURL+"?page=regional")
	m := readMessage(t, conn)
	if m.Page == nil || m.Page.ID != report.PageRegional {
		t.Fatalf("page: got %+v, want regional", m.Page)
	}
	if m.Data.Title != "paged" {
		t.Errorf("title: got %q, want paged", m.Data.Title)
	}
}

func TestHub_UnknownPageQuery_Returns400(t *testing.T) {
	hub := wsHub.New(newStore(t), nil, 0, nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "?page=nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestHub_SubscribeFrame(t *testing.T) {
	wsURL, _, _ := startHub(t, newStore(t, "frames"), 0, nil)

	conn := dial(t, wsURL)
	if m := readMessage(t, conn); m.Page != nil {
		t.Fatalf("unsubscribed client got page %q", m.Page.ID)
	}

	if err := conn.WriteJSON(map[string]string{"page": "impact"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	m := readMessage(t, conn)
	if m.Page == nil || m.Page.ID != report.PageImpact {
		t.Fatalf("after subscribe: got %+v, want impact page", m.Page)
	}

	if err := conn.WriteJSON(map[string]string{"page": "nope"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	m = readMessage(t, conn)
	if m.Event != wsHub.EventError || !strings.Contains(m.Error, "unknown page nope") {
		t.Errorf("got event=%q error=%q, want unknown page error", m.Event, m.Error)
	}
}
