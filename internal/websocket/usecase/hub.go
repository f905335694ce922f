package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	ws "chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/log"
)

const broadcastBufferSize = 1000

type streamMessage struct {
	stream  string
	payload json.RawMessage
}

// Hub tracks live connections and which of their identifiers listen on each stream.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	users       map[int64]int
	// stream -> connection -> identifiers
	streams map[string]map[*connection]map[string]struct{}

	broadcast chan streamMessage

	maxConnections int
	logger         log.Logger

	messagesReceived atomic.Int64
	messagesSent     atomic.Int64
	messagesDropped  atomic.Int64
	commandsRejected atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newHub(logger log.Logger, maxConnections int) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		connections:    make(map[*connection]struct{}),
		users:          make(map[int64]int),
		streams:        make(map[string]map[*connection]map[string]struct{}),
		broadcast:      make(chan streamMessage, broadcastBufferSize),
		maxConnections: maxConnections,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// run fans stream messages out in arrival order until shutdown.
func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.publish(msg)
		}
	}
}

func (h *Hub) shutdown(ctx context.Context) error {
	h.cancel()
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue hands msg to the run loop.
func (h *Hub) enqueue(ctx context.Context, msg streamMessage) error {
	if h.ctx.Err() != nil {
		return ws.ErrHubClosed
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.ctx.Done():
		return ws.ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) add(c *connection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx.Err() != nil {
		return ws.ErrHubClosed
	}
	if h.maxConnections > 0 && len(h.connections) >= h.maxConnections {
		return ws.ErrMaxConnectionsReached
	}

	h.connections[c] = struct{}{}
	h.users[c.scope.UserID]++
	return nil
}

// remove drops c and every subscription it holds, then closes its send queue.
func (h *Hub) remove(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removeLocked(c)
}

func (h *Hub) removeLocked(c *connection) bool {
	if _, ok := h.connections[c]; !ok {
		return false
	}

	for _, stream := range c.subs {
		h.detachLocked(stream, c)
	}
	c.subs = make(map[string]string)

	delete(h.connections, c)
	if h.users[c.scope.UserID]--; h.users[c.scope.UserID] <= 0 {
		delete(h.users, c.scope.UserID)
	}
	close(c.send)
	return true
}

func (h *Hub) detachLocked(stream string, c *connection) {
	conns := h.streams[stream]
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.streams, stream)
	}
}

// subscribe attaches identifier on c to stream. It reports false when c is gone.
func (h *Hub) subscribe(c *connection, identifier, stream string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c]; !ok {
		return false
	}

	c.subs[identifier] = stream
	conns, ok := h.streams[stream]
	if !ok {
		conns = make(map[*connection]map[string]struct{})
		h.streams[stream] = conns
	}
	ids, ok := conns[c]
	if !ok {
		ids = make(map[string]struct{})
		conns[c] = ids
	}
	ids[identifier] = struct{}{}
	return true
}

// unsubscribe detaches identifier on c. Unknown identifiers are ignored.
func (h *Hub) unsubscribe(c *connection, identifier string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stream, ok := c.subs[identifier]
	if !ok {
		return
	}
	delete(c.subs, identifier)

	ids := h.streams[stream][c]
	delete(ids, identifier)
	if len(ids) == 0 {
		h.detachLocked(stream, c)
	}
}

// deliver queues data on c without blocking. A full queue drops the frame.
func (h *Hub) deliver(c *connection, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.deliverLocked(c, data)
}

func (h *Hub) deliverLocked(c *connection, data []byte) bool {
	if _, ok := h.connections[c]; !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		h.messagesDropped.Add(1)
		h.logger.Warnf(h.ctx, "internal.websocket.usecase.Hub.deliver: send buffer full | connection: %s", c.id)
		return false
	}
}

func (h *Hub) publish(msg streamMessage) {
	h.messagesReceived.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for c, ids := range h.streams[msg.stream] {
		for identifier := range ids {
			data, err := json.Marshal(cable.Frame{Identifier: identifier, Message: msg.payload})
			if err != nil {
				h.logger.Errorf(h.ctx, "internal.websocket.usecase.Hub.publish: %v", err)
				continue
			}
			if h.deliverLocked(c, data) {
				sent++
			}
		}
	}
	h.messagesSent.Add(int64(sent))
}

// closeAll tells every client the server is going away and closes their queues.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	bye := disconnectFrame(disconnectServerRestart)
	for c := range h.connections {
		select {
		case c.send <- bye:
		default:
		}
		h.removeLocked(c)
	}
	h.logger.Info(context.Background(), "internal.websocket.usecase.Hub.closeAll: all connections closed")
}

func (h *Hub) stats() ws.HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := 0
	for c := range h.connections {
		subs += len(c.subs)
	}
	return ws.HubStats{
		ActiveConnections: len(h.connections),
		TotalUniqueUsers:  len(h.users),
		ActiveStreams:     len(h.streams),
		Subscriptions:     subs,
		MessagesReceived:  h.messagesReceived.Load(),
		MessagesSent:      h.messagesSent.Load(),
		MessagesDropped:   h.messagesDropped.Load(),
		CommandsRejected:  h.commandsRejected.Load(),
	}
}
