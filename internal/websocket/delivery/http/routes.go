package http

import (
	"chat-realtime/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the cable endpoint. Authentication runs before the upgrade.
func (h Handler) RegisterRoutes(r gin.IRoutes, mw middleware.Middleware) {
	r.GET("/cable", mw.Auth(), h.HandleCable)
}
