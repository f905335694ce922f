package broadcast

import (
	"context"

	"chat-realtime/pkg/cable"
)

// UseCase turns domain changes into events on conversation and user streams.
// Delivery is best effort: publish failures are logged and reported, never returned.
type UseCase interface {
	DispatchMessageCreated(ctx context.Context, msg MessageSnapshot)
	DispatchReactionsUpdated(ctx context.Context, msg MessageSnapshot, lastActorID int64, lastActorEmoji string, action cable.ReactionAction)
	DispatchTypingIndicator(ctx context.Context, conversationID int64, user UserSnapshot, isTyping bool)
	DispatchMessageRead(ctx context.Context, conversationID, userID int64)
	DispatchNotification(ctx context.Context, n NotificationSnapshot)
}

// Publisher is the outbox the dispatcher writes events to.
type Publisher interface {
	// Publish hands payload to every current subscriber of stream.
	Publish(ctx context.Context, stream string, payload cable.Payload) error
}
