package usecase

import (
	"context"
	"fmt"

	"chat-realtime/internal/model"
	ws "chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"
)

func (uc *implUseCase) ProcessMessage(ctx context.Context, input ws.ProcessMessageInput) error {
	if !model.IsStream(input.Stream) {
		return fmt.Errorf("%w: %q", model.ErrInvalidStream, input.Stream)
	}

	// Only well-formed events of a known kind reach clients.
	if _, err := cable.DecodeEvent(input.Payload); err != nil {
		return fmt.Errorf("%w: %v", ws.ErrInvalidMessage, err)
	}

	return uc.hub.enqueue(ctx, streamMessage{stream: input.Stream, payload: input.Payload})
}
