package discord

import (
	"context"
	"fmt"
	"time"
)

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	embed := Embed{
		Title:       truncateString(options.Title, MaxTitleLen),
		Description: truncateString(options.Description, MaxDescriptionLen),
		Color:       colorForType(options.Type),
		Fields:      options.Fields,
		Footer:      options.Footer,
	}
	if !options.Timestamp.IsZero() {
		embed.Timestamp = options.Timestamp.Format(time.RFC3339)
	}
	if err := validateEmbedLength(embed); err != nil {
		return err
	}

	return d.sendWithRetry(ctx, &WebhookPayload{
		Embeds:   []Embed{embed},
		Username: d.config.DefaultUsername,
	})
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	var fields []EmbedField
	if err != nil {
		fields = append(fields, EmbedField{
			Name:  "Error",
			Value: truncateString(err.Error(), MaxFieldValueLen),
		})
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       title,
		Description: description,
		Fields:      fields,
		Timestamp:   time.Now(),
	})
}

func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       ReportBugTitle,
		Description: fmt.Sprintf("```%s```", truncateString(message, MaxDescriptionLen-6)),
		Timestamp:   time.Now(),
	})
}

func colorForType(msgType MessageType) int {
	switch msgType {
	case MessageTypeSuccess:
		return ColorSuccess
	case MessageTypeWarning:
		return ColorWarning
	case MessageTypeError:
		return ColorError
	default:
		return ColorInfo
	}
}

func validateEmbedLength(embed Embed) error {
	total := len(embed.Title) + len(embed.Description)
	for _, f := range embed.Fields {
		total += len(f.Name) + len(f.Value)
	}
	if total > MaxEmbedLength {
		return fmt.Errorf("embed too long: %d characters (max: %d)", total, MaxEmbedLength)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
