package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscord struct {
	mu   sync.Mutex
	sent []discord.MessageOptions
	err  error
}

func (f *fakeDiscord) SendEmbed(_ context.Context, o discord.MessageOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, o)
	return f.err
}

func (f *fakeDiscord) SendError(context.Context, string, string, error) error { return nil }
func (f *fakeDiscord) ReportBug(context.Context, string) error                { return nil }
func (f *fakeDiscord) Close() error                                           { return nil }

func TestDispatchPublishFailure(t *testing.T) {
	d := &fakeDiscord{}
	uc := New(log.NewNop(), d, time.Minute)
	ctx := context.Background()

	in := alert.PublishFailureInput{
		Stream:    "conversation:7",
		EventType: "message_created",
		Err:       errors.New("connection refused"),
	}
	require.NoError(t, uc.DispatchPublishFailure(ctx, in))
	// Same stream and kind inside the cooldown is suppressed.
	require.NoError(t, uc.DispatchPublishFailure(ctx, in))

	in.EventType = "typing_indicator"
	require.NoError(t, uc.DispatchPublishFailure(ctx, in))

	require.Len(t, d.sent, 2)
	assert.Equal(t, discord.MessageTypeError, d.sent[0].Type)
	assert.Equal(t, "conversation:7", d.sent[0].Fields[0].Value)
	assert.Equal(t, "connection refused", d.sent[0].Fields[2].Value)
}

func TestDispatchPublishFailure_InvalidInput(t *testing.T) {
	uc := New(log.NewNop(), &fakeDiscord{}, 0)
	err := uc.DispatchPublishFailure(context.Background(), alert.PublishFailureInput{Stream: "user:1"})
	assert.ErrorIs(t, err, alert.ErrInvalidInput)
}

func TestDispatchSubscriberDown_WrapsDiscordError(t *testing.T) {
	d := &fakeDiscord{err: errors.New("429")}
	uc := New(log.NewNop(), d, time.Minute)

	err := uc.DispatchSubscriberDown(context.Background(), alert.SubscriberDownInput{
		Patterns:    []string{"conversation:*", "user:*"},
		Err:         errors.New("EOF"),
		Connections: 12,
	})
	assert.ErrorIs(t, err, alert.ErrDispatchFailed)
	require.Len(t, d.sent, 1)
	assert.Equal(t, "12", d.sent[0].Fields[1].Value)
}

func TestBuildField(t *testing.T) {
	f := buildField("Error", "", false)
	assert.Equal(t, "N/A", f.Value)

	f = buildField("Error", strings.Repeat("x", 2000), false)
	assert.Len(t, f.Value, discord.MaxFieldValueLen)
	assert.True(t, strings.HasSuffix(f.Value, "..."))
}
