package usecase

import (
	"context"

	"chat-realtime/internal/broadcast"
	"chat-realtime/internal/model"
	"chat-realtime/pkg/cable"
)

func (uc *implUseCase) DispatchTypingIndicator(ctx context.Context, conversationID int64, user broadcast.UserSnapshot, isTyping bool) {
	if conversationID <= 0 || user.ID <= 0 {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.DispatchTypingIndicator: conversation=%d user=%d", conversationID, user.ID)
		return
	}

	uc.publish(ctx, model.ConversationStream(conversationID), cable.TypingIndicator{
		Type:           cable.EventTypingIndicator,
		ConversationID: conversationID,
		UserID:         user.ID,
		UserName:       user.Name,
		IsTyping:       isTyping,
	})
}

func (uc *implUseCase) DispatchMessageRead(ctx context.Context, conversationID, userID int64) {
	if conversationID <= 0 || userID <= 0 {
		uc.l.Warnf(ctx, "internal.broadcast.usecase.DispatchMessageRead: conversation=%d user=%d", conversationID, userID)
		return
	}

	uc.publish(ctx, model.ConversationStream(conversationID), cable.MessageRead{
		Type:           cable.EventMessageRead,
		ConversationID: conversationID,
		UserID:         userID,
		ReadAt:         uc.clock().UTC(),
	})
}
