package usecase

import (
	"context"
	"fmt"

	"chat-realtime/internal/model"
	ws "chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"

	"github.com/jellydator/ttlcache/v3"
)

// resolveStream maps a subscription identifier to the stream it may listen on.
// UserChannel always resolves to the caller's own stream.
func (uc *implUseCase) resolveStream(ctx context.Context, sc model.Scope, identifier string) (string, error) {
	params, err := cable.ParseIdentifier(identifier)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ws.ErrInvalidCommand, err)
	}

	switch params.Channel() {
	case cable.ChannelUser:
		return model.UserStream(sc.UserID), nil

	case cable.ChannelChat:
		conversationID, ok := params.Int64("conversation_id")
		if !ok || conversationID <= 0 {
			return "", fmt.Errorf("%w: conversation_id", ws.ErrInvalidCommand)
		}
		if err := uc.authorize(ctx, conversationID, sc.UserID); err != nil {
			return "", err
		}
		return model.ConversationStream(conversationID), nil

	default:
		return "", fmt.Errorf("%w: %q", ws.ErrUnknownChannel, params.Channel())
	}
}

func (uc *implUseCase) authorize(ctx context.Context, conversationID, userID int64) error {
	if uc.repo == nil {
		return ws.ErrNotParticipant
	}

	key := membershipKey{conversationID: conversationID, userID: userID}
	if uc.members.Get(key) != nil {
		return nil
	}

	ok, err := uc.repo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ws.ErrNotParticipant
	}
	uc.members.Set(key, struct{}{}, ttlcache.DefaultTTL)
	return nil
}
