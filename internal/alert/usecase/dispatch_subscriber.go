package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chat-realtime/internal/alert"
	"chat-realtime/pkg/discord"
)

func (uc *implUseCase) DispatchSubscriberDown(ctx context.Context, input alert.SubscriberDownInput) error {
	if input.Err == nil {
		return alert.ErrInvalidInput
	}
	if !uc.claim("subscriber|" + strings.Join(input.Patterns, ",")) {
		return nil
	}

	at := input.At
	if at.IsZero() {
		at = uc.now()
	}

	opts := discord.MessageOptions{
		Type:        discord.MessageTypeWarning,
		Title:       "Cable subscriber disconnected",
		Description: "The pub/sub subscriber lost its connection and is reconnecting. Events published meanwhile are not delivered.",
		Fields: []discord.EmbedField{
			buildField("Patterns", strings.Join(input.Patterns, ", "), true),
			buildField("Open connections", strconv.Itoa(input.Connections), true),
			buildField("Error", input.Err.Error(), false),
		},
		Timestamp: at,
		Footer:    &discord.EmbedFooter{Text: footerText},
	}

	if err := uc.discord.SendEmbed(ctx, opts); err != nil {
		uc.logger.Warnf(ctx, "internal.alert.usecase.DispatchSubscriberDown: %v", err)
		return fmt.Errorf("%w: %v", alert.ErrDispatchFailed, err)
	}
	return nil
}
