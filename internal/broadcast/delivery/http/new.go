package http

import (
	"chat-realtime/internal/broadcast"
	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/log"
)

type Handler struct {
	l       log.Logger
	uc      broadcast.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc broadcast.UseCase, discord discord.IDiscord) Handler {
	return Handler{
		l:       l,
		uc:      uc,
		discord: discord,
	}
}
