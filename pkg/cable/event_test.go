package cable

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, ev Event)
	}{
		{
			name: "message created",
			raw: `{"type":"message_created","id":11,"conversation_id":4,"body":"hello","author_id":2,` +
				`"author_name":"Bo","author_avatar_url":"https://cdn/a.png","created_at":"2024-05-01T10:00:00Z",` +
				`"attachments":[{"id":1,"filename":"a.pdf","content_type":"application/pdf","byte_size":10,"url":"https://x"}],` +
				`"reactions":{"👍":2}}`,
			check: func(t *testing.T, ev Event) {
				m := ev.MessageCreated
				require.NotNil(t, m)
				assert.Equal(t, int64(11), m.ID)
				require.NotNil(t, m.AuthorAvatarURL)
				assert.Equal(t, "https://cdn/a.png", *m.AuthorAvatarURL)
				assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), m.CreatedAt.UTC())
				require.Len(t, m.Attachments, 1)
				assert.Equal(t, "a.pdf", m.Attachments[0].Filename)
				assert.Equal(t, 2, m.Reactions["👍"])
			},
		},
		{
			name: "reactions updated",
			raw:  `{"type":"message_reactions_updated","message_id":3,"reactions":{"🎉":1},"last_actor_id":8,"last_actor_emoji":"🎉","last_actor_action":"added"}`,
			check: func(t *testing.T, ev Event) {
				require.NotNil(t, ev.ReactionsUpdated)
				assert.Equal(t, ReactionAdded, ev.ReactionsUpdated.LastActorAction)
				assert.Equal(t, int64(8), ev.ReactionsUpdated.LastActorID)
			},
		},
		{
			name: "typing",
			raw:  `{"type":"typing_indicator","conversation_id":1,"user_id":2,"user_name":"Cy","is_typing":true}`,
			check: func(t *testing.T, ev Event) {
				require.NotNil(t, ev.TypingIndicator)
				assert.True(t, ev.TypingIndicator.IsTyping)
			},
		},
		{
			name: "read",
			raw:  `{"type":"message_read","conversation_id":1,"user_id":2,"read_at":"2024-05-01T10:00:00Z"}`,
			check: func(t *testing.T, ev Event) {
				require.NotNil(t, ev.MessageRead)
				assert.Equal(t, int64(2), ev.MessageRead.UserID)
			},
		},
		{
			name: "refresh",
			raw:  `{"type":"conversation_refresh","conversation_id":6}`,
			check: func(t *testing.T, ev Event) {
				require.NotNil(t, ev.ConversationRefresh)
				assert.Equal(t, int64(6), ev.ConversationRefresh.ConversationID)
			},
		},
		{
			name: "notification",
			raw:  `{"type":"notification_received","id":1,"action":"endorsed","summary":"Ana endorsed you","actor_avatar_url":null,"created_at":"2024-05-01T10:00:00Z"}`,
			check: func(t *testing.T, ev Event) {
				require.NotNil(t, ev.NotificationReceived)
				assert.Nil(t, ev.NotificationReceived.ActorAvatarURL)
				assert.Equal(t, "endorsed", ev.NotificationReceived.Action)
			},
		},
	}

	seen := make(map[EventType]bool)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeEvent(json.RawMessage(tt.raw))
			require.NoError(t, err)
			require.True(t, ev.Type.IsValid())
			require.NotNil(t, ev.Payload())
			assert.Equal(t, ev.Type, ev.Payload().EventType())
			seen[ev.Type] = true
			tt.check(t, ev)
		})
	}

	for _, et := range EventTypes() {
		assert.True(t, seen[et], "no decode case for %s", et)
	}
}

func TestDecodeEvent_Errors(t *testing.T) {
	_, err := DecodeEvent(json.RawMessage(`{"type":"mesage_created"}`))
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = DecodeEvent(json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = DecodeEvent(json.RawMessage(`{"type":"typing_indicator","is_typing":"yes"}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = DecodeEvent(json.RawMessage(`[1,2]`))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}

func TestEventHandler_DropsUndecodable(t *testing.T) {
	var got []EventType
	h := EventHandler(func(ev Event) { got = append(got, ev.Type) })

	h(json.RawMessage(`{"type":"nope"}`))
	h(json.RawMessage(`garbage`))
	h(json.RawMessage(`{"type":"conversation_refresh","conversation_id":1}`))

	assert.Equal(t, []EventType{EventConversationRefresh}, got)
}
