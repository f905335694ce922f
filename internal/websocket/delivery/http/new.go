package http

import (
	"net/http"

	"chat-realtime/internal/middleware"
	"chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/log"

	gws "github.com/gorilla/websocket"
)

type WSConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	AllowedOrigins  []string
}

type Handler struct {
	uc       websocket.UseCase
	logger   log.Logger
	upgrader gws.Upgrader
}

func New(uc websocket.UseCase, logger log.Logger, wsCfg WSConfig) Handler {
	return Handler{
		uc:     uc,
		logger: logger,
		upgrader: gws.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			Subprotocols:    []string{cable.ProtocolJSON},
			CheckOrigin:     checkOrigin(wsCfg.AllowedOrigins),
		},
	}
}

// checkOrigin accepts non-browser clients, which send no Origin header.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		return middleware.OriginAllowed(origin, allowed)
	}
}
