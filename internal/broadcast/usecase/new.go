package usecase

import (
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/internal/broadcast"
	"chat-realtime/internal/conversation/repository"
	"chat-realtime/pkg/log"
	"chat-realtime/pkg/minio"

	"github.com/jellydator/ttlcache/v3"
)

const (
	DefaultParticipantTTL = 30 * time.Second
	DefaultPresignTTL     = time.Hour

	participantCacheCapacity = 10000
)

// Options tunes the dispatcher.
type Options struct {
	// RefreshAuthor sends conversation_refresh to the author of a new message too.
	RefreshAuthor  bool
	ParticipantTTL time.Duration
	Bucket         string
	PresignTTL     time.Duration
}

type implUseCase struct {
	l       log.Logger
	pub     broadcast.Publisher
	repo    repository.Repository
	storage minio.MinIO
	alert   alert.UseCase
	opts    Options

	participants *ttlcache.Cache[int64, []int64]
	clock        func() time.Time
}

// New returns a dispatcher publishing through pub. repo, storage and alertUC
// are optional: without repo, messages must carry their participant ids;
// without storage, attachments must carry their URL.
func New(l log.Logger, pub broadcast.Publisher, repo repository.Repository, storage minio.MinIO, alertUC alert.UseCase, opts Options) broadcast.UseCase {
	if opts.ParticipantTTL <= 0 {
		opts.ParticipantTTL = DefaultParticipantTTL
	}
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = DefaultPresignTTL
	}

	return &implUseCase{
		l:       l,
		pub:     pub,
		repo:    repo,
		storage: storage,
		alert:   alertUC,
		opts:    opts,
		participants: ttlcache.New[int64, []int64](
			ttlcache.WithTTL[int64, []int64](opts.ParticipantTTL),
			ttlcache.WithCapacity[int64, []int64](participantCacheCapacity),
			ttlcache.WithDisableTouchOnHit[int64, []int64](),
		),
		clock: time.Now,
	}
}
