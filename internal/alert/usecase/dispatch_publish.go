package usecase

import (
	"context"
	"fmt"

	"chat-realtime/internal/alert"
	"chat-realtime/pkg/discord"
)

func (uc *implUseCase) DispatchPublishFailure(ctx context.Context, input alert.PublishFailureInput) error {
	if input.Stream == "" || input.Err == nil {
		return alert.ErrInvalidInput
	}

	// One alert per stream and event kind per cooldown window.
	if !uc.claim("publish|" + input.Stream + "|" + input.EventType) {
		return nil
	}

	at := input.At
	if at.IsZero() {
		at = uc.now()
	}

	opts := discord.MessageOptions{
		Type:        discord.MessageTypeError,
		Title:       "Broadcast publish failed",
		Description: fmt.Sprintf("An event for stream **%s** was dropped.", input.Stream),
		Fields: []discord.EmbedField{
			buildField("Stream", input.Stream, true),
			buildField("Event", input.EventType, true),
			buildField("Error", input.Err.Error(), false),
		},
		Timestamp: at,
		Footer:    &discord.EmbedFooter{Text: footerText},
	}

	if err := uc.discord.SendEmbed(ctx, opts); err != nil {
		uc.logger.Warnf(ctx, "internal.alert.usecase.DispatchPublishFailure: %v", err)
		return fmt.Errorf("%w: %v", alert.ErrDispatchFailed, err)
	}
	return nil
}
