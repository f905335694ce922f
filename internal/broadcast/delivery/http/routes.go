package http

import (
	"chat-realtime/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the internal broadcast API. Every route requires the internal key.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	broadcasts := r.Group("/broadcasts", mw.InternalKey())
	{
		broadcasts.POST("/messages", h.MessageCreated)
		broadcasts.POST("/reactions", h.ReactionsUpdated)
		broadcasts.POST("/typing", h.TypingIndicator)
		broadcasts.POST("/reads", h.MessageRead)
		broadcasts.POST("/notifications", h.Notification)
	}
}
