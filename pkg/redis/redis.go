package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// New creates a Redis client from cfg and verifies it with a ping.
func New(cfg RedisConfig) (IRedis, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	opts := &goredis.Options{
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinIdleConns:    cfg.MinIdleConns,
		PoolSize:        cfg.PoolSize,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisImpl{client: client}, nil
}

// NewFromClient wraps an existing go-redis client without pinging it.
func NewFromClient(client *goredis.Client) IRedis {
	return &redisImpl{client: client}
}

func (r *redisImpl) Publish(ctx context.Context, channel string, payload []byte) (int64, error) {
	if channel == "" {
		return 0, ErrChannelRequired
	}
	return r.client.Publish(ctx, channel, payload).Result()
}

func (r *redisImpl) PSubscribe(ctx context.Context, patterns ...string) *goredis.PubSub {
	return r.client.PSubscribe(ctx, patterns...)
}

func (r *redisImpl) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.client.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (r *redisImpl) Close() error {
	return r.client.Close()
}

func (r *redisImpl) GetClient() *goredis.Client {
	return r.client
}
