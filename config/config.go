package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Storage Configuration
	Redis    RedisConfig
	Postgres PostgresConfig
	MinIO    MinIOConfig

	// Realtime Configuration
	WebSocket WebSocketConfig
	Broadcast BroadcastConfig

	// Authentication & Security Configuration
	JWT      JWTConfig
	Cookie   CookieConfig
	Internal InternalConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP server.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// PostgresConfig is the configuration for the read-only participant store.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MinIOConfig is the configuration for the attachment store.
type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	Region     string
	Bucket     string
	PresignTTL time.Duration
}

// WebSocketConfig is the configuration for cable connections.
type WebSocketConfig struct {
	PingInterval    time.Duration
	PongWait        time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	MaxConnections  int
	// AllowedOrigins limits handshake and CORS origins. Empty allows all.
	AllowedOrigins []string

	// Commands per second a single connection may send, and the burst allowed above it.
	CommandRate  float64
	CommandBurst int
}

// BroadcastConfig is the configuration for the broadcast dispatcher.
type BroadcastConfig struct {
	// RefreshAuthor controls whether the author's own user stream receives
	// conversation_refresh for a message they created.
	RefreshAuthor  bool
	ParticipantTTL time.Duration
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string
}

// CookieConfig is the configuration for HttpOnly cookie authentication
type CookieConfig struct {
	Domain string
	Secure bool
	Name   string
}

// InternalConfig holds the shared key the write path uses on the internal API.
type InternalConfig struct {
	Key string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DiscordConfig is the configuration for Discord webhook notifications
type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	viper.SetConfigName("chat-realtime-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/chat-realtime/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional, env vars are enough.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment
	cfg.Environment.Name = viper.GetString("environment.name")

	// Server
	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")

	// Logger
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.UseTLS = viper.GetBool("redis.use_tls")
	cfg.Redis.MaxRetries = viper.GetInt("redis.max_retries")
	cfg.Redis.MinIdleConns = viper.GetInt("redis.min_idle_conns")
	cfg.Redis.PoolSize = viper.GetInt("redis.pool_size")
	cfg.Redis.PoolTimeout = viper.GetDuration("redis.pool_timeout")
	cfg.Redis.ConnMaxIdleTime = viper.GetDuration("redis.conn_max_idle_time")
	cfg.Redis.ConnMaxLifetime = viper.GetDuration("redis.conn_max_lifetime")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")

	// MinIO
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")
	cfg.MinIO.PresignTTL = viper.GetDuration("minio.presign_ttl")

	// WebSocket
	cfg.WebSocket.PingInterval = viper.GetDuration("websocket.ping_interval")
	cfg.WebSocket.PongWait = viper.GetDuration("websocket.pong_wait")
	cfg.WebSocket.WriteWait = viper.GetDuration("websocket.write_wait")
	cfg.WebSocket.MaxMessageSize = viper.GetInt64("websocket.max_message_size")
	cfg.WebSocket.ReadBufferSize = viper.GetInt("websocket.read_buffer_size")
	cfg.WebSocket.WriteBufferSize = viper.GetInt("websocket.write_buffer_size")
	cfg.WebSocket.MaxConnections = viper.GetInt("websocket.max_connections")
	cfg.WebSocket.AllowedOrigins = viper.GetStringSlice("websocket.allowed_origins")
	cfg.WebSocket.CommandRate = viper.GetFloat64("websocket.command_rate")
	cfg.WebSocket.CommandBurst = viper.GetInt("websocket.command_burst")

	// Broadcast
	cfg.Broadcast.RefreshAuthor = viper.GetBool("broadcast.refresh_author")
	cfg.Broadcast.ParticipantTTL = viper.GetDuration("broadcast.participant_ttl")

	// JWT
	cfg.JWT.SecretKey = viper.GetString("jwt.secret_key")

	// Cookie
	cfg.Cookie.Domain = viper.GetString("cookie.domain")
	cfg.Cookie.Secure = viper.GetBool("cookie.secure")
	cfg.Cookie.Name = viper.GetString("cookie.name")

	// Internal
	cfg.Internal.Key = viper.GetString("internal.key")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Logger
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.use_tls", false)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.min_idle_conns", 10)
	viper.SetDefault("redis.pool_size", 100)
	viper.SetDefault("redis.pool_timeout", 4*time.Second)
	viper.SetDefault("redis.conn_max_idle_time", 5*time.Minute)
	viper.SetDefault("redis.conn_max_lifetime", 30*time.Minute)

	// Postgres
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.sslmode", "disable")

	// MinIO
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "attachments")
	viper.SetDefault("minio.presign_ttl", time.Hour)

	// WebSocket
	viper.SetDefault("websocket.ping_interval", 3*time.Second)
	viper.SetDefault("websocket.pong_wait", 60*time.Second)
	viper.SetDefault("websocket.write_wait", 10*time.Second)
	viper.SetDefault("websocket.max_message_size", 4096)
	viper.SetDefault("websocket.read_buffer_size", 1024)
	viper.SetDefault("websocket.write_buffer_size", 1024)
	viper.SetDefault("websocket.max_connections", 10000)
	viper.SetDefault("websocket.command_rate", 20.0)
	viper.SetDefault("websocket.command_burst", 40)

	// Broadcast
	viper.SetDefault("broadcast.refresh_author", true)
	viper.SetDefault("broadcast.participant_ttl", 30*time.Second)

	// Cookie
	viper.SetDefault("cookie.secure", true)
	viper.SetDefault("cookie.name", "chat_auth_token")
}

func validate(cfg *Config) error {
	// JWT
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt.secret_key must be at least 32 characters for security")
	}

	// Internal API
	if cfg.Internal.Key == "" {
		return fmt.Errorf("internal.key is required")
	}

	// Redis
	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if cfg.Redis.Port == 0 {
		return fmt.Errorf("redis.port is required")
	}

	// Postgres
	if cfg.Postgres.Host == "" {
		return fmt.Errorf("postgres.host is required")
	}
	if cfg.Postgres.DBName == "" {
		return fmt.Errorf("postgres.dbname is required")
	}

	// WebSocket
	if cfg.WebSocket.MaxConnections <= 0 {
		return fmt.Errorf("websocket.max_connections must be greater than 0")
	}
	if cfg.WebSocket.PongWait <= cfg.WebSocket.PingInterval {
		return fmt.Errorf("websocket.pong_wait must be greater than websocket.ping_interval")
	}

	// Cookie
	if cfg.Cookie.Name == "" {
		return fmt.Errorf("cookie.name is required")
	}

	return nil
}
