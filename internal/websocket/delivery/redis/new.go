package redis

import (
	"context"
	"sync"
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/internal/websocket"
	"chat-realtime/pkg/log"
	pkgRedis "chat-realtime/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

const defaultRetryBackoff = time.Second

// Subscriber relays every broadcast stream published on Redis into the local hub.
type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis   pkgRedis.IRedis
	uc      websocket.UseCase
	alertUC alert.UseCase
	logger  log.Logger
	backoff time.Duration

	pubsub *goredis.PubSub
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Subscriber. alertUC may be nil.
func New(redis pkgRedis.IRedis, uc websocket.UseCase, alertUC alert.UseCase, logger log.Logger) Subscriber {
	ctx, cancel := context.WithCancel(context.Background())
	return &subscriber{
		redis:   redis,
		uc:      uc,
		alertUC: alertUC,
		logger:  logger,
		backoff: defaultRetryBackoff,
		ctx:     ctx,
		cancel:  cancel,
	}
}
