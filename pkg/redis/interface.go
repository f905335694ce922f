package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IRedis is the subset of Redis the realtime service relies on: Pub/Sub plus health.
type IRedis interface {
	// Publish sends payload on channel and returns the number of receivers.
	Publish(ctx context.Context, channel string, payload []byte) (int64, error)
	// PSubscribe opens a pattern subscription. Callers own the returned PubSub.
	PSubscribe(ctx context.Context, patterns ...string) *goredis.PubSub
	// Ping checks if the connection is alive and returns latency.
	Ping(ctx context.Context) (time.Duration, error)
	Close() error
	GetClient() *goredis.Client
}
