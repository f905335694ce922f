package usecase

import (
	"context"

	"chat-realtime/internal/broadcast"
	"chat-realtime/internal/model"
	"chat-realtime/pkg/cable"
)

func (uc *implUseCase) DispatchNotification(ctx context.Context, n broadcast.NotificationSnapshot) {
	if err := n.Validate(); err != nil {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.DispatchNotification.Validate: %v", err)
		return
	}

	uc.publish(ctx, model.UserStream(n.RecipientID), cable.NotificationReceived{
		Type:           cable.EventNotificationReceived,
		ID:             n.ID,
		Action:         n.Action,
		Summary:        n.Summary,
		ActorAvatarURL: n.ActorAvatarURL,
		CreatedAt:      n.CreatedAt.UTC(),
	})
}
