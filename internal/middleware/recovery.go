package middleware

import (
	"chat-realtime/pkg/discord"
	"chat-realtime/pkg/log"
	"chat-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 and reports it to Discord when configured.
func Recovery(logger log.Logger, discordClient discord.IDiscord) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Errorf(c.Request.Context(), "internal.middleware.Recovery: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c, err, discordClient)
			}
		}()
		c.Next()
	}
}
