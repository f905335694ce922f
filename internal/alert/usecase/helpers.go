package usecase

import (
	"chat-realtime/pkg/discord"
)

const footerText = "Chat Realtime • Delivery Monitor"

// claim reports whether key was not alerted on within the cooldown, and marks it.
func (uc *implUseCase) claim(key string) bool {
	_, found := uc.sent.GetOrSet(key, struct{}{})
	return !found
}

func buildField(name string, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	if len(value) > discord.MaxFieldValueLen {
		value = truncateText(value, discord.MaxFieldValueLen)
	}
	return discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
