package cable

import "errors"

var (
	ErrChannelRequired  = errors.New("cable: channel is required")
	ErrInvalidParams    = errors.New("cable: invalid stream params")
	ErrNilHandler       = errors.New("cable: handler is required")
	ErrRouterClosed     = errors.New("cable: router is closed")
	ErrUnknownEventType = errors.New("cable: unknown event type")
	ErrMalformedEvent   = errors.New("cable: malformed event")
	ErrInvalidURL       = errors.New("cable: invalid url")
)
