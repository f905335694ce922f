package usecase

import (
	"context"
	"time"

	"chat-realtime/internal/conversation/repository"
	ws "chat-realtime/internal/websocket"
	"chat-realtime/pkg/log"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

const (
	DefaultMembershipTTL = 30 * time.Second
	sendBufferSize       = 256
	membershipCapacity   = 50000
)

// Config holds the per-connection limits and timings.
type Config struct {
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	MaxConnections int

	// CommandRate is commands per second; CommandBurst the bucket size above it.
	CommandRate  float64
	CommandBurst int

	MembershipTTL time.Duration
}

type membershipKey struct {
	conversationID int64
	userID         int64
}

// implUseCase implements websocket.UseCase.
type implUseCase struct {
	hub    *Hub
	logger log.Logger
	repo   repository.Repository
	cfg    Config

	// Confirmed memberships only; a refused subscribe always hits the store.
	members *ttlcache.Cache[membershipKey, struct{}]
}

// New creates the cable usecase. Without repo, ChatChannel subscriptions are not authorized.
func New(logger log.Logger, repo repository.Repository, cfg Config) ws.UseCase {
	return newUseCase(logger, repo, cfg)
}

func newUseCase(logger log.Logger, repo repository.Repository, cfg Config) *implUseCase {
	if cfg.MembershipTTL <= 0 {
		cfg.MembershipTTL = DefaultMembershipTTL
	}
	return &implUseCase{
		hub:    newHub(logger, cfg.MaxConnections),
		logger: logger,
		repo:   repo,
		cfg:    cfg,
		members: ttlcache.New[membershipKey, struct{}](
			ttlcache.WithTTL[membershipKey, struct{}](cfg.MembershipTTL),
			ttlcache.WithCapacity[membershipKey, struct{}](membershipCapacity),
			ttlcache.WithDisableTouchOnHit[membershipKey, struct{}](),
		),
	}
}

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.shutdown(ctx)
}

func (uc *implUseCase) Register(ctx context.Context, input ws.ConnectionInput) error {
	if input.Conn == nil || input.Scope.UserID <= 0 {
		return ws.ErrInvalidMessage
	}

	limit := rate.Inf
	if uc.cfg.CommandRate > 0 {
		limit = rate.Limit(uc.cfg.CommandRate)
	}

	c := &connection{
		id:      uuid.NewString(),
		uc:      uc,
		hub:     uc.hub,
		conn:    input.Conn,
		scope:   input.Scope,
		send:    make(chan []byte, sendBufferSize),
		subs:    make(map[string]string),
		limiter: rate.NewLimiter(limit, max(uc.cfg.CommandBurst, 1)),
		logger:  uc.logger,
	}

	if err := uc.hub.add(c); err != nil {
		return err
	}

	// The connection outlives the upgrade request.
	connCtx := uc.logger.With(context.WithoutCancel(ctx), "connection_id", c.id, "user_id", c.scope.UserID)
	c.start(connCtx)
	return nil
}

func (uc *implUseCase) GetStats(ctx context.Context) (ws.HubStats, error) {
	return uc.hub.stats(), nil
}
