package model

import "time"

// Participant is a user's membership in a conversation.
type Participant struct {
	ConversationID int64      `json:"conversation_id"`
	UserID         int64      `json:"user_id"`
	DisplayName    string     `json:"display_name"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	JoinedAt       time.Time  `json:"joined_at"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
}

// ParticipantIDs returns the user ids of ps in order.
func ParticipantIDs(ps []Participant) []int64 {
	ids := make([]int64, len(ps))
	for i, p := range ps {
		ids[i] = p.UserID
	}
	return ids
}
