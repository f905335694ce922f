package postgre

import (
	"strings"
	"testing"
	"time"

	"chat-realtime/internal/conversation/repository"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListParticipantsQuery(t *testing.T) {
	tests := []struct {
		name     string
		opts     repository.ListParticipantsOptions
		wantArgs int
		wantAny  bool
		wantErr  error
	}{
		{
			name:     "conversation only",
			opts:     repository.ListParticipantsOptions{ConversationID: 42},
			wantArgs: 1,
		},
		{
			name:     "narrowed to users",
			opts:     repository.ListParticipantsOptions{ConversationID: 42, UserIDs: []int64{1, 2}},
			wantArgs: 2,
			wantAny:  true,
		},
		{
			name:    "zero conversation",
			opts:    repository.ListParticipantsOptions{},
			wantErr: repository.ErrInvalidConversationID,
		},
		{
			name:    "bad user id",
			opts:    repository.ListParticipantsOptions{ConversationID: 1, UserIDs: []int64{3, 0}},
			wantErr: repository.ErrInvalidUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListParticipantsQuery(tt.opts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, tt.opts.ConversationID, args[0])
			assert.Contains(t, query, "WHERE cp.conversation_id = $1")
			assert.Equal(t, tt.wantAny, strings.Contains(query, "ANY($2)"))
		})
	}
}

func TestParticipantRowToModel(t *testing.T) {
	joined := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	p := participantRow{
		ConversationID: 7,
		UserID:         3,
		DisplayName:    "Ana",
		AvatarURL:      null.StringFrom("avatars/3.png"),
		JoinedAt:       joined,
	}.toModel()

	assert.Equal(t, int64(7), p.ConversationID)
	assert.Equal(t, int64(3), p.UserID)
	require.NotNil(t, p.AvatarURL)
	assert.Equal(t, "avatars/3.png", *p.AvatarURL)
	assert.Nil(t, p.LastReadAt)
	assert.Equal(t, joined, p.JoinedAt)
}
