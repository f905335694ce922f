package websocket

import (
	"context"
)

// UseCase serves cable connections and fans stream messages out to their subscribers.
type UseCase interface {
	// Run drives the hub until Shutdown.
	Run()
	Shutdown(ctx context.Context) error

	// Register takes ownership of an upgraded connection.
	Register(ctx context.Context, input ConnectionInput) error

	GetStats(ctx context.Context) (HubStats, error)

	// ProcessMessage delivers a payload received on a pub/sub stream.
	ProcessMessage(ctx context.Context, input ProcessMessageInput) error
}
