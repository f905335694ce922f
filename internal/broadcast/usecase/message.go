package usecase

import (
	"context"

	"chat-realtime/internal/broadcast"
	"chat-realtime/internal/model"
	"chat-realtime/pkg/cable"
)

func (uc *implUseCase) DispatchMessageCreated(ctx context.Context, msg broadcast.MessageSnapshot) {
	if err := msg.Validate(); err != nil {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.DispatchMessageCreated.Validate: %v", err)
		return
	}

	uc.publish(ctx, model.ConversationStream(msg.ConversationID), cable.MessageCreated{
		Type:            cable.EventMessageCreated,
		ID:              msg.ID,
		ConversationID:  msg.ConversationID,
		Body:            msg.Body,
		AuthorID:        msg.Author.ID,
		AuthorName:      msg.Author.Name,
		AuthorAvatarURL: msg.Author.AvatarURL,
		CreatedAt:       msg.CreatedAt.UTC(),
		Attachments:     uc.attachments(ctx, msg.Attachments),
		Reactions:       tally(msg.Reactions),
	})

	participantIDs, err := uc.participantIDs(ctx, msg)
	if err != nil {
		uc.l.Errorf(ctx, "internal.broadcast.usecase.DispatchMessageCreated.participantIDs: conversation=%d: %v", msg.ConversationID, err)
		return
	}

	refresh := cable.ConversationRefresh{
		Type:           cable.EventConversationRefresh,
		ConversationID: msg.ConversationID,
		MessageID:      msg.ID,
	}
	for _, userID := range participantIDs {
		if userID == msg.Author.ID && !uc.opts.RefreshAuthor {
			continue
		}
		uc.publish(ctx, model.UserStream(userID), refresh)
	}
}

func (uc *implUseCase) DispatchReactionsUpdated(ctx context.Context, msg broadcast.MessageSnapshot, lastActorID int64, lastActorEmoji string, action cable.ReactionAction) {
	if msg.ID <= 0 || msg.ConversationID <= 0 {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.DispatchReactionsUpdated: message=%d conversation=%d", msg.ID, msg.ConversationID)
		return
	}
	if err := broadcast.ValidateReaction(lastActorID, lastActorEmoji, action); err != nil {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.DispatchReactionsUpdated.ValidateReaction: %v", err)
		return
	}

	uc.publish(ctx, model.ConversationStream(msg.ConversationID), cable.ReactionsUpdated{
		Type:            cable.EventReactionsUpdated,
		MessageID:       msg.ID,
		ConversationID:  msg.ConversationID,
		Reactions:       tally(msg.Reactions),
		LastActorID:     lastActorID,
		LastActorEmoji:  lastActorEmoji,
		LastActorAction: action,
	})
}
