package usecase

import (
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/log"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultCooldown is how long an identical alert is suppressed after being sent.
const DefaultCooldown = time.Minute

type implUseCase struct {
	logger  log.Logger
	discord discord.IDiscord
	sent    *ttlcache.Cache[string, struct{}]
	now     func() time.Time
}

func New(logger log.Logger, discord discord.IDiscord, cooldown time.Duration) alert.UseCase {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &implUseCase{
		logger:  logger,
		discord: discord,
		sent: ttlcache.New[string, struct{}](
			ttlcache.WithTTL[string, struct{}](cooldown),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
		now: time.Now,
	}
}
