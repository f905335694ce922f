package websocket

import "errors"

var (
	ErrInvalidMessage        = errors.New("invalid message format")
	ErrInvalidCommand        = errors.New("invalid command")
	ErrUnknownChannel        = errors.New("unknown channel")
	ErrNotParticipant        = errors.New("not a participant of the conversation")
	ErrRateLimited           = errors.New("command rate limit exceeded")
	ErrMaxConnectionsReached = errors.New("maximum connections reached")
	ErrHubClosed             = errors.New("hub is shut down")
)
