package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/internal/broadcast"
	"chat-realtime/internal/conversation/repository"
	"chat-realtime/internal/model"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	stream  string
	payload cable.Payload
}

type recordingPublisher struct {
	mu    sync.Mutex
	calls []published
	fail  map[string]error
}

func (p *recordingPublisher) Publish(_ context.Context, stream string, payload cable.Payload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, published{stream: stream, payload: payload})
	return p.fail[stream]
}

func (p *recordingPublisher) streams() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	for i, c := range p.calls {
		out[i] = c.stream
	}
	return out
}

type fakeRepo struct {
	mu    sync.Mutex
	calls int
	ps    []model.Participant
	err   error
}

func (r *fakeRepo) ListParticipants(_ context.Context, opts repository.ListParticipantsOptions) ([]model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.ps, r.err
}

func (r *fakeRepo) IsParticipant(context.Context, int64, int64) (bool, error) {
	return true, nil
}

type fakeStorage struct{}

func (fakeStorage) Connect(context.Context) error     { return nil }
func (fakeStorage) HealthCheck(context.Context) error { return nil }
func (fakeStorage) Close() error                      { return nil }
func (fakeStorage) PresignedGetURL(_ context.Context, bucket, object, _ string, _ time.Duration) (string, error) {
	if object == "broken" {
		return "", errors.New("no such key")
	}
	return "https://minio.local/" + bucket + "/" + object + "?sig=1", nil
}

type fakeAlert struct {
	ch chan alert.PublishFailureInput
}

func (a *fakeAlert) DispatchPublishFailure(_ context.Context, in alert.PublishFailureInput) error {
	a.ch <- in
	return nil
}

func (a *fakeAlert) DispatchSubscriberDown(context.Context, alert.SubscriberDownInput) error {
	return nil
}

func newUseCase(pub broadcast.Publisher, repo repository.Repository, a alert.UseCase, opts Options) *implUseCase {
	return New(log.NewNop(), pub, repo, fakeStorage{}, a, opts).(*implUseCase)
}

func message(participants ...int64) broadcast.MessageSnapshot {
	return broadcast.MessageSnapshot{
		ID:             10,
		ConversationID: 42,
		Body:           "hi",
		Author:         broadcast.UserSnapshot{ID: 1, Name: "Ann"},
		CreatedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ParticipantIDs: participants,
	}
}

func TestDispatchMessageCreated_FansOutToParticipants(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{RefreshAuthor: true})

	uc.DispatchMessageCreated(context.Background(), message(1, 2, 3))

	assert.Equal(t, []string{"conversation:42", "user:1", "user:2", "user:3"}, pub.streams())

	created, ok := pub.calls[0].payload.(cable.MessageCreated)
	require.True(t, ok)
	assert.Equal(t, cable.EventMessageCreated, created.Type)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Ann", created.AuthorName)
	assert.NotNil(t, created.Attachments)
	assert.NotNil(t, created.Reactions)

	for _, c := range pub.calls[1:] {
		refresh, ok := c.payload.(cable.ConversationRefresh)
		require.True(t, ok)
		assert.Equal(t, cable.ConversationRefresh{
			Type:           cable.EventConversationRefresh,
			ConversationID: 42,
			MessageID:      10,
		}, refresh)
	}
}

func TestDispatchMessageCreated_SkipsAuthorWhenDisabled(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{RefreshAuthor: false})

	uc.DispatchMessageCreated(context.Background(), message(1, 2, 3))

	assert.Equal(t, []string{"conversation:42", "user:2", "user:3"}, pub.streams())
}

func TestDispatchMessageCreated_RefreshIsNotDeduplicated(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{RefreshAuthor: true})

	uc.DispatchMessageCreated(context.Background(), message(2, 2, 3, 0))

	assert.Equal(t, []string{"conversation:42", "user:2", "user:2", "user:3"}, pub.streams())
}

func TestDispatchMessageCreated_LoadsParticipantsOnce(t *testing.T) {
	pub := &recordingPublisher{}
	repo := &fakeRepo{ps: []model.Participant{{UserID: 1}, {UserID: 5}}}
	uc := newUseCase(pub, repo, nil, Options{RefreshAuthor: true, ParticipantTTL: time.Minute})

	uc.DispatchMessageCreated(context.Background(), message())
	uc.DispatchMessageCreated(context.Background(), message())

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, []string{
		"conversation:42", "user:1", "user:5",
		"conversation:42", "user:1", "user:5",
	}, pub.streams())
}

func TestDispatchMessageCreated_ParticipantLoadFailure(t *testing.T) {
	pub := &recordingPublisher{}
	repo := &fakeRepo{err: errors.New("db down")}
	uc := newUseCase(pub, repo, nil, Options{RefreshAuthor: true})

	uc.DispatchMessageCreated(context.Background(), message())

	assert.Equal(t, []string{"conversation:42"}, pub.streams())
}

func TestDispatchMessageCreated_NoParticipantSource(t *testing.T) {
	pub := &recordingPublisher{}
	uc := New(log.NewNop(), pub, nil, nil, nil, Options{RefreshAuthor: true})

	uc.DispatchMessageCreated(context.Background(), message())

	assert.Equal(t, []string{"conversation:42"}, pub.streams())
}

func TestDispatchMessageCreated_InvalidSnapshotPublishesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{})

	msg := message(1)
	msg.ConversationID = 0
	uc.DispatchMessageCreated(context.Background(), msg)

	assert.Empty(t, pub.streams())
}

func TestDispatchMessageCreated_AttachmentsAndReactions(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{Bucket: "attachments"})

	msg := message()
	msg.ParticipantIDs = []int64{}
	msg.Attachments = []broadcast.AttachmentSnapshot{
		{ID: 1, Filename: "a.png", URL: "https://cdn/a.png"},
		{ID: 2, Filename: "b.pdf", ObjectKey: "b.pdf"},
		{ID: 3, Filename: "c.txt", ObjectKey: "broken"},
	}
	msg.Reactions = []broadcast.ReactionSnapshot{
		{UserID: 1, Emoji: "👍"},
		{UserID: 2, Emoji: "👍"},
		{UserID: 3, Emoji: "🎉"},
	}
	uc.DispatchMessageCreated(context.Background(), msg)

	require.Len(t, pub.calls, 1)
	created := pub.calls[0].payload.(cable.MessageCreated)
	require.Len(t, created.Attachments, 3)
	assert.Equal(t, "https://cdn/a.png", created.Attachments[0].URL)
	assert.Equal(t, "https://minio.local/attachments/b.pdf?sig=1", created.Attachments[1].URL)
	assert.Empty(t, created.Attachments[2].URL)
	assert.Equal(t, map[string]int{"👍": 2, "🎉": 1}, created.Reactions)
}

func TestDispatchMessageCreated_PublishFailureIsSwallowedAndReported(t *testing.T) {
	pub := &recordingPublisher{fail: map[string]error{"user:2": errors.New("redis down")}}
	a := &fakeAlert{ch: make(chan alert.PublishFailureInput, 1)}
	uc := newUseCase(pub, nil, a, Options{RefreshAuthor: true})

	uc.DispatchMessageCreated(context.Background(), message(1, 2, 3))

	// Publishing continues past the failed stream.
	assert.Equal(t, []string{"conversation:42", "user:1", "user:2", "user:3"}, pub.streams())

	select {
	case in := <-a.ch:
		assert.Equal(t, "user:2", in.Stream)
		assert.Equal(t, "conversation_refresh", in.EventType)
	case <-time.After(time.Second):
		t.Fatal("publish failure was not reported")
	}
}

func TestDispatchReactionsUpdated(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{})

	msg := message()
	msg.Reactions = []broadcast.ReactionSnapshot{{UserID: 2, Emoji: "❤️"}}
	uc.DispatchReactionsUpdated(context.Background(), msg, 1, "👍", cable.ReactionRemoved)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, "conversation:42", pub.calls[0].stream)
	assert.Equal(t, cable.ReactionsUpdated{
		Type:            cable.EventReactionsUpdated,
		MessageID:       10,
		ConversationID:  42,
		Reactions:       map[string]int{"❤️": 1},
		LastActorID:     1,
		LastActorEmoji:  "👍",
		LastActorAction: cable.ReactionRemoved,
	}, pub.calls[0].payload)

	uc.DispatchReactionsUpdated(context.Background(), msg, 1, "👍", "toggled")
	assert.Len(t, pub.calls, 1)
}

func TestDispatchTypingIndicator(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{})

	uc.DispatchTypingIndicator(context.Background(), 42, broadcast.UserSnapshot{ID: 3, Name: "Cat"}, true)
	uc.DispatchTypingIndicator(context.Background(), 0, broadcast.UserSnapshot{ID: 3}, true)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, cable.TypingIndicator{
		Type:           cable.EventTypingIndicator,
		ConversationID: 42,
		UserID:         3,
		UserName:       "Cat",
		IsTyping:       true,
	}, pub.calls[0].payload)
}

func TestDispatchMessageRead_UsesDispatchClock(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{})
	now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	uc.clock = func() time.Time { return now }

	uc.DispatchMessageRead(context.Background(), 42, 2)

	require.Len(t, pub.calls, 1)
	read := pub.calls[0].payload.(cable.MessageRead)
	assert.Equal(t, int64(2), read.UserID)
	assert.True(t, read.ReadAt.Equal(now))
	assert.Equal(t, time.UTC, read.ReadAt.Location())
}

func TestDispatchNotification(t *testing.T) {
	pub := &recordingPublisher{}
	uc := newUseCase(pub, nil, nil, Options{})

	uc.DispatchNotification(context.Background(), broadcast.NotificationSnapshot{
		ID:          5,
		RecipientID: 9,
		Action:      "mentioned",
		Summary:     "Ann mentioned you",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	uc.DispatchNotification(context.Background(), broadcast.NotificationSnapshot{ID: 6, RecipientID: 9})

	require.Len(t, pub.calls, 1)
	assert.Equal(t, "user:9", pub.calls[0].stream)
	n := pub.calls[0].payload.(cable.NotificationReceived)
	assert.Equal(t, cable.EventNotificationReceived, n.Type)
	assert.Equal(t, "mentioned", n.Action)
	assert.Nil(t, n.ActorAvatarURL)
}
