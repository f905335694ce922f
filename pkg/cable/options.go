package cable

import (
	"net/http"
	"time"

	"chat-realtime/pkg/log"

	"github.com/gorilla/websocket"
)

const (
	DefaultReconnectDelay   = time.Second
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 10 * time.Second
)

// Option configures a Router.
type Option func(*Router)

// WithReconnectDelay sets the fixed delay between a close and the next
// connection attempt.
func WithReconnectDelay(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.reconnectDelay = d
		}
	}
}

// WithLogger sets the router logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.l = l
		}
	}
}

// WithHeader adds handshake headers, e.g. a session cookie.
func WithHeader(h http.Header) Option {
	return func(r *Router) {
		r.header = h.Clone()
	}
}

// WithDialer replaces the handshake dialer. Sub-protocols are always forced
// to the cable pair.
func WithDialer(d *websocket.Dialer) Option {
	return func(r *Router) {
		if d != nil {
			cp := *d
			r.dialer = &cp
		}
	}
}

// WithHandshakeTimeout bounds each connection attempt.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.handshakeTimeout = d
		}
	}
}

// WithWriteTimeout bounds each outbound command write.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.writeTimeout = d
		}
	}
}

// WithStateListener registers fn to observe state transitions. fn runs while
// the router holds its lock and must not call back into the router.
func WithStateListener(fn func(State)) Option {
	return func(r *Router) {
		r.onState = fn
	}
}
