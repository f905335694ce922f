package cable

import (
	"encoding/json"
	"sync/atomic"
)

// Handler receives the message body of every event frame routed to its
// subscription. Handlers run on the router's read goroutine, one frame at a
// time, so slow work should be handed off.
type Handler func(message json.RawMessage)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	router     *Router
	identifier string
	handler    Handler
	active     atomic.Bool
}

// Identifier returns the canonical identifier of the subscribed stream.
func (s *Subscription) Identifier() string {
	return s.identifier
}

// Active reports whether the subscription still receives messages.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Unsubscribe deactivates and removes the handler before returning. Frames
// read after that point never reach it, even if the transport-level
// unsubscribe could not be sent. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	s.router.remove(s)
}
