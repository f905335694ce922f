package redis

import (
	"chat-realtime/internal/broadcast"
	"chat-realtime/pkg/log"
	pkgRedis "chat-realtime/pkg/redis"
)

type publisher struct {
	redis  pkgRedis.IRedis
	logger log.Logger
}

// NewPublisher returns a broadcast.Publisher backed by Redis Pub/Sub.
func NewPublisher(redis pkgRedis.IRedis, logger log.Logger) broadcast.Publisher {
	return &publisher{
		redis:  redis,
		logger: logger,
	}
}
