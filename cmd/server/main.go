package main

import (
	"context"
	"fmt"

	"chat-realtime/config"
	configMinio "chat-realtime/config/minio"
	"chat-realtime/config/postgre"
	configRedis "chat-realtime/config/redis"
	"chat-realtime/internal/httpserver"
	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/log"
	"chat-realtime/pkg/minio"
	"chat-realtime/pkg/scope"
)

// @title       Chat Realtime Service
// @description Cable server for chat: subscriptions over WebSocket and the internal broadcast API.
// @version     1.0
// @host        localhost:8080
// @schemes     ws http
// @BasePath    /
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name chat_auth_token
// @description Authentication token stored in HttpOnly cookie
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
//
// @securityDefinitions.apikey InternalKey
// @in header
// @name X-Internal-Key
// @description Shared key for the internal broadcast API
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting Chat Realtime Service...")

	// Discord webhook (optional)
	discordClient, err := discord.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil
	} else {
		defer discordClient.Close()
		logger.Info(ctx, "Discord webhook initialized")
	}

	// Redis - pub/sub transport between dispatcher and hub
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "Redis client initialized")

	// PostgreSQL - conversation participants
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect()
	logger.Infof(ctx, "PostgreSQL connected to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// MinIO - attachment URLs (optional)
	var storage minio.MinIO
	if configMinio.Enabled(cfg.MinIO) {
		storage, err = configMinio.Connect(ctx, cfg.MinIO)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
			return
		}
		defer storage.Close()
		logger.Infof(ctx, "MinIO connected to %s", cfg.MinIO.Endpoint)
	}

	// JWT Manager (verify tokens from header/query/cookie)
	jwtManager := scope.New(cfg.JWT.SecretKey)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		// Server configuration
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Mode:        cfg.Server.Mode,
		Environment: cfg.Environment.Name,

		// Realtime configuration
		WSConfig:        cfg.WebSocket,
		BroadcastConfig: cfg.Broadcast,
		Bucket:          cfg.MinIO.Bucket,
		PresignTTL:      cfg.MinIO.PresignTTL,

		// Auth & security
		JWTManager:  jwtManager,
		Cookie:      cfg.Cookie,
		InternalKey: cfg.Internal.Key,

		// External services
		Redis:    redisClient,
		Postgres: postgresDB,
		MinIO:    storage,
		Discord:  discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
	}
}
