package httpserver

import (
	"chat-realtime/internal/alert"
	alertUsecase "chat-realtime/internal/alert/usecase"
	broadcastHTTP "chat-realtime/internal/broadcast/delivery/http"
	broadcastRedis "chat-realtime/internal/broadcast/delivery/redis"
	broadcastUsecase "chat-realtime/internal/broadcast/usecase"
	conversationRepo "chat-realtime/internal/conversation/repository/postgre"
	"chat-realtime/internal/middleware"
	wsHTTP "chat-realtime/internal/websocket/delivery/http"
	wsRedis "chat-realtime/internal/websocket/delivery/redis"
	wsUsecase "chat-realtime/internal/websocket/usecase"

	// Import this to execute the init function in docs.go which setups the Swagger docs.
	_ "chat-realtime/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	InternalApi = "/internal/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.logger, srv.discord))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig(srv.wsConfig.AllowedOrigins)))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	mw := middleware.New(srv.logger, srv.jwtMgr, srv.cookieCfg, srv.internalKey)

	// Repositories
	convRepo := conversationRepo.New(srv.logger, srv.postgres)

	// Alerts are optional
	var alertUC alert.UseCase
	if srv.discord != nil {
		alertUC = alertUsecase.New(srv.logger, srv.discord, alertUsecase.DefaultCooldown)
	}

	// Cable hub
	srv.wsUC = wsUsecase.New(srv.logger, convRepo, wsUsecase.Config{
		PingInterval:   srv.wsConfig.PingInterval,
		PongWait:       srv.wsConfig.PongWait,
		WriteWait:      srv.wsConfig.WriteWait,
		MaxMessageSize: srv.wsConfig.MaxMessageSize,
		MaxConnections: srv.wsConfig.MaxConnections,
		CommandRate:    srv.wsConfig.CommandRate,
		CommandBurst:   srv.wsConfig.CommandBurst,
		MembershipTTL:  srv.broadcastConfig.ParticipantTTL,
	})
	srv.wsSubscriber = wsRedis.New(srv.redis, srv.wsUC, alertUC, srv.logger)

	wsHTTP.New(srv.wsUC, srv.logger, wsHTTP.WSConfig{
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
		AllowedOrigins:  srv.wsConfig.AllowedOrigins,
	}).RegisterRoutes(srv.gin, mw)

	// Broadcast dispatcher
	broadcastUC := broadcastUsecase.New(
		srv.logger,
		broadcastRedis.NewPublisher(srv.redis, srv.logger),
		convRepo,
		srv.minio,
		alertUC,
		broadcastUsecase.Options{
			RefreshAuthor:  srv.broadcastConfig.RefreshAuthor,
			ParticipantTTL: srv.broadcastConfig.ParticipantTTL,
			Bucket:         srv.bucket,
			PresignTTL:     srv.presignTTL,
		},
	)

	internal := srv.gin.Group(InternalApi)
	broadcastHTTP.New(srv.logger, broadcastUC, srv.discord).RegisterRoutes(internal, mw)

	return nil
}
