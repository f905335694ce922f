package redis

import (
	"context"
	"fmt"
	"sync"

	"chat-realtime/config"
	pkgRedis "chat-realtime/pkg/redis"
)

var (
	instance pkgRedis.IRedis
	mu       sync.Mutex
)

// Connect initializes the shared Redis client. Calling it again returns the existing client.
func Connect(ctx context.Context, cfg config.RedisConfig) (pkgRedis.IRedis, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := pkgRedis.New(pkgRedis.RedisConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Password:        cfg.Password,
		DB:              cfg.DB,
		UseTLS:          cfg.UseTLS,
		MaxRetries:      cfg.MaxRetries,
		MinIdleConns:    cfg.MinIdleConns,
		PoolSize:        cfg.PoolSize,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	instance = client
	return instance, nil
}

// Disconnect closes the shared Redis client.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}
