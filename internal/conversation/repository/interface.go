package repository

import (
	"context"

	"chat-realtime/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	// ListParticipants returns the members of a conversation ordered by join time.
	ListParticipants(ctx context.Context, opts ListParticipantsOptions) ([]model.Participant, error)
	// IsParticipant reports whether userID belongs to conversationID.
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
}
