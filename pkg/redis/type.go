package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection and pool settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type redisImpl struct {
	client *goredis.Client
}
