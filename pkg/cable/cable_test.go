package cable

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

type received struct {
	conn int
	cmd  Command
}

// fakeCable is a minimal cable endpoint: it records client commands and lets
// the test push frames or drop every connection.
type fakeCable struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns []*websocket.Conn

	commands  chan received
	connected chan int
}

func newFakeCable(t *testing.T) *fakeCable {
	t.Helper()

	f := &fakeCable{
		t: t,
		upgrader: websocket.Upgrader{
			Subprotocols: []string{ProtocolJSON},
			CheckOrigin:  func(r *http.Request) bool { return true },
		},
		commands:  make(chan received, 100),
		connected: make(chan int, 10),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(func() {
		f.dropAll()
		f.srv.Close()
	})
	return f
}

func (f *fakeCable) url() string {
	return "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/cable"
}

func (f *fakeCable) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	f.mu.Lock()
	idx := len(f.conns)
	f.conns = append(f.conns, conn)
	_ = conn.WriteJSON(Frame{Type: TypeWelcome})
	f.mu.Unlock()

	f.connected <- idx

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		f.commands <- received{conn: idx, cmd: cmd}
	}
}

func (f *fakeCable) push(idx int, frame any) {
	f.t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NoError(f.t, f.conns[idx].WriteJSON(frame))
}

func (f *fakeCable) pushRaw(idx int, data string) {
	f.t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NoError(f.t, f.conns[idx].WriteMessage(websocket.TextMessage, []byte(data)))
}

func (f *fakeCable) dropAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		c.Close()
	}
}

func (f *fakeCable) waitConnected() int {
	f.t.Helper()
	select {
	case idx := <-f.connected:
		return idx
	case <-time.After(waitTimeout):
		f.t.Fatal("timed out waiting for connection")
		return -1
	}
}

func (f *fakeCable) nextCommand() received {
	f.t.Helper()
	select {
	case rc := <-f.commands:
		return rc
	case <-time.After(waitTimeout):
		f.t.Fatal("timed out waiting for command")
		return received{}
	}
}

// commandsFor collects n commands and returns them keyed by identifier.
func (f *fakeCable) commandsFor(n int) map[string][]received {
	f.t.Helper()
	out := make(map[string][]received)
	for i := 0; i < n; i++ {
		rc := f.nextCommand()
		out[rc.cmd.Identifier] = append(out[rc.cmd.Identifier], rc)
	}
	return out
}

func (f *fakeCable) expectNoCommand(d time.Duration) {
	f.t.Helper()
	select {
	case rc := <-f.commands:
		f.t.Fatalf("unexpected command %+v on connection %d", rc.cmd, rc.conn)
	case <-time.After(d):
	}
}

type recorder struct {
	name string
	out  chan string
}

func (rec recorder) handler() Handler {
	return func(message json.RawMessage) {
		rec.out <- rec.name + ":" + string(message)
	}
}

func newRouter(t *testing.T, f *fakeCable, opts ...Option) *Router {
	t.Helper()
	opts = append([]Option{WithReconnectDelay(50 * time.Millisecond)}, opts...)
	r, err := New(f.url(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func mustIdentifier(t *testing.T, p Params) string {
	t.Helper()
	id, err := Identifier(p)
	require.NoError(t, err)
	return id
}

func expectDelivery(t *testing.T, out chan string, want string) {
	t.Helper()
	select {
	case got := <-out:
		require.Equal(t, want, got)
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func expectNoDelivery(t *testing.T, out chan string, d time.Duration) {
	t.Helper()
	select {
	case got := <-out:
		t.Fatalf("unexpected delivery %s", got)
	case <-time.After(d):
	}
}
