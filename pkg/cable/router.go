package cable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"chat-realtime/pkg/log"

	"github.com/gorilla/websocket"
)

// Router multiplexes stream subscriptions over a single WebSocket. It dials
// lazily on the first Subscribe, reconnects after a fixed delay whenever the
// socket closes and resubscribes every registered identifier once per open.
type Router struct {
	url              string
	header           http.Header
	dialer           *websocket.Dialer
	reconnectDelay   time.Duration
	handshakeTimeout time.Duration
	writeTimeout     time.Duration
	l                log.Logger
	onState          func(State)

	state atomic.Int32

	// mu guards everything below and serializes socket writes.
	mu       sync.Mutex
	conn     *websocket.Conn
	subs     map[string][]*Subscription
	timer    *time.Timer
	timerSeq uint64
	closed   bool
}

// New creates a Router for the cable endpoint at rawURL (ws:// or wss://).
// No connection is made until the first Subscribe.
func New(rawURL string, opts ...Option) (*Router, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	r := &Router{
		url:              rawURL,
		dialer:           &websocket.Dialer{},
		reconnectDelay:   DefaultReconnectDelay,
		handshakeTimeout: DefaultHandshakeTimeout,
		writeTimeout:     DefaultWriteTimeout,
		l:                log.NewNop(),
		subs:             make(map[string][]*Subscription),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.dialer.Subprotocols = []string{ProtocolJSON, ProtocolUnsupported}
	r.dialer.HandshakeTimeout = r.handshakeTimeout

	return r, nil
}

// State returns the current connection state.
func (r *Router) State() State {
	return State(r.state.Load())
}

// Subscribe registers h for the stream described by params. A transport
// subscribe command is sent only when h is the first handler for the
// identifier and the socket is open; otherwise the next open sends it.
func (r *Router) Subscribe(params Params, h Handler) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	identifier, err := Identifier(params)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{router: r, identifier: identifier, handler: h}
	sub.active.Store(true)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRouterClosed
	}

	r.subs[identifier] = append(r.subs[identifier], sub)
	if len(r.subs[identifier]) == 1 {
		r.sendLocked(CommandSubscribe, identifier)
	}
	r.ensureConnectingLocked()

	return sub, nil
}

// SubscribeToConversationChat subscribes h to a conversation's message stream.
func (r *Router) SubscribeToConversationChat(conversationID int64, h Handler) (*Subscription, error) {
	return r.Subscribe(ConversationParams(conversationID), h)
}

// SubscribeToUserStream subscribes h to the authenticated user's personal stream.
func (r *Router) SubscribeToUserStream(h Handler) (*Subscription, error) {
	return r.Subscribe(UserParams(), h)
}

// Identifiers returns the identifiers that currently have at least one handler.
func (r *Router) Identifiers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identifiersLocked()
}

// Close stops reconnecting and closes the socket. Subscribe fails afterwards.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	r.stopTimerLocked()

	var err error
	if r.conn != nil {
		_ = r.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(r.writeTimeout))
		err = r.conn.Close()
		r.conn = nil
	}
	r.setStateLocked(StateClosed)
	return err
}

func (r *Router) remove(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.subs[sub.identifier]
	for i, s := range list {
		if s == sub {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}

	if len(list) > 0 {
		r.subs[sub.identifier] = list
		return
	}
	delete(r.subs, sub.identifier)
	r.sendLocked(CommandUnsubscribe, sub.identifier)
}

func (r *Router) identifiersLocked() []string {
	ids := make([]string, 0, len(r.subs))
	for id, list := range r.subs {
		if len(list) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (r *Router) setStateLocked(s State) {
	if State(r.state.Swap(int32(s))) == s {
		return
	}
	if r.onState != nil {
		r.onState(s)
	}
}

// ensureConnectingLocked starts a dial if the socket is closed. A pending
// reconnect timer is cancelled so only one attempt runs at a time.
func (r *Router) ensureConnectingLocked() {
	if r.closed || r.State() != StateClosed {
		return
	}
	r.stopTimerLocked()
	r.setStateLocked(StateConnecting)
	go r.dial()
}

func (r *Router) scheduleReconnectLocked() {
	if r.closed || r.timer != nil {
		return
	}
	r.timerSeq++
	seq := r.timerSeq
	r.timer = time.AfterFunc(r.reconnectDelay, func() {
		r.onReconnectTimer(seq)
	})
}

func (r *Router) onReconnectTimer(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer == nil || seq != r.timerSeq {
		return
	}
	r.timer = nil
	r.ensureConnectingLocked()
}

func (r *Router) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Router) dial() {
	ctx, cancel := context.WithTimeout(context.Background(), r.handshakeTimeout)
	conn, resp, err := r.dialer.DialContext(ctx, r.url, r.header)
	cancel()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		r.l.Warnf(context.Background(), "pkg.cable.Router.dial: %v", err)
		r.setStateLocked(StateClosed)
		r.scheduleReconnectLocked()
		return
	}

	r.conn = conn
	r.stopTimerLocked()
	r.setStateLocked(StateOpen)
	r.l.Debugf(context.Background(), "pkg.cable.Router.dial: connected to %s (%s)", r.url, conn.Subprotocol())

	for _, identifier := range r.identifiersLocked() {
		r.sendLocked(CommandSubscribe, identifier)
	}

	go r.readLoop(conn)
}

// sendLocked writes a command if the socket is open and drops it otherwise.
func (r *Router) sendLocked(command, identifier string) {
	if r.State() != StateOpen || r.conn == nil {
		return
	}

	data, err := json.Marshal(Command{Command: command, Identifier: identifier})
	if err != nil {
		return
	}

	_ = r.conn.SetWriteDeadline(time.Now().Add(r.writeTimeout))
	if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		// the read loop sees the broken socket and drives the reconnect
		r.l.Warnf(context.Background(), "pkg.cable.Router.send: %s %s: %v", command, identifier, err)
	}
}

func (r *Router) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			r.handleDisconnect(conn, err)
			return
		}
		r.dispatch(data)
	}
}

func (r *Router) handleDisconnect(conn *websocket.Conn, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != conn {
		return
	}
	conn.Close()
	r.conn = nil
	r.setStateLocked(StateClosed)

	if !r.closed {
		r.l.Infof(context.Background(), "pkg.cable.Router.readLoop: connection lost, reconnecting in %s: %v", r.reconnectDelay, cause)
		r.scheduleReconnectLocked()
	}
}

// dispatch routes an event frame to the handlers registered for its
// identifier at arrival time, in registration order. Anything else is dropped.
func (r *Router) dispatch(data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return
	}
	if !frame.IsEvent() {
		return
	}

	r.mu.Lock()
	handlers := append([]*Subscription(nil), r.subs[frame.Identifier]...)
	r.mu.Unlock()

	for _, sub := range handlers {
		if sub.active.Load() {
			sub.handler(frame.Message)
		}
	}
}
