package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"chat-realtime/config"
	"chat-realtime/internal/websocket"
	"chat-realtime/internal/websocket/delivery/redis"
	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/log"
	"chat-realtime/pkg/minio"
	pkgRedis "chat-realtime/pkg/redis"
	"chat-realtime/pkg/scope"

	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 30 * time.Second

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) is responsible for starting background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin         *gin.Engine
	logger      log.Logger
	host        string
	port        int
	environment string

	// Realtime configuration
	wsConfig        config.WebSocketConfig
	broadcastConfig config.BroadcastConfig
	bucket          string
	presignTTL      time.Duration

	// Built by mapHandlers
	wsUC         websocket.UseCase
	wsSubscriber redis.Subscriber

	// Auth & security
	jwtMgr      scope.Manager
	cookieCfg   config.CookieConfig
	internalKey string

	// External services
	redis    pkgRedis.IRedis
	postgres *sql.DB
	minio    minio.MinIO
	discord  discord.IDiscord
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host        string
	Port        int
	Mode        string
	Environment string

	// Realtime configuration
	WSConfig        config.WebSocketConfig
	BroadcastConfig config.BroadcastConfig
	Bucket          string
	PresignTTL      time.Duration

	// Auth & security
	JWTManager  scope.Manager
	Cookie      config.CookieConfig
	InternalKey string

	// External services. MinIO and Discord are optional.
	Redis    pkgRedis.IRedis
	Postgres *sql.DB
	MinIO    minio.MinIO
	Discord  discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		host:        cfg.Host,
		port:        cfg.Port,
		environment: cfg.Environment,

		wsConfig:        cfg.WSConfig,
		broadcastConfig: cfg.BroadcastConfig,
		bucket:          cfg.Bucket,
		presignTTL:      cfg.PresignTTL,

		jwtMgr:      cfg.JWTManager,
		cookieCfg:   cfg.Cookie,
		internalKey: cfg.InternalKey,

		redis:    cfg.Redis,
		postgres: cfg.Postgres,
		minio:    cfg.MinIO,
		discord:  cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if s.internalKey == "" {
		return errors.New("internal key is required")
	}
	if s.redis == nil {
		return errors.New("Redis client is required")
	}
	if s.postgres == nil {
		return errors.New("Postgres connection is required")
	}

	return nil
}
