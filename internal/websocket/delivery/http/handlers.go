package http

import (
	"slices"
	"time"

	"chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/response"
	"chat-realtime/pkg/scope"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
)

const closeWriteWait = time.Second

// HandleCable upgrades an authenticated request to a cable connection.
// @Summary Open a cable connection
// @Description Upgrades to a WebSocket speaking actioncable-v1-json. The JWT may be sent as a Bearer header, the "token" query parameter or the auth cookie.
// @Tags Cable
// @Param token query string false "JWT token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} response.Resp "Unsupported protocol"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Failure 503 {object} response.Resp "Maximum connections reached"
// @Router /cable [GET]
func (h Handler) HandleCable(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := scope.GetScopeFromContext(ctx)
	if !ok {
		response.Error(c, errMissingScope, nil)
		return
	}
	if !slices.Contains(gws.Subprotocols(c.Request), cable.ProtocolJSON) {
		response.Error(c, errNoSubprotocol, nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Warnf(ctx, "internal.websocket.delivery.http.HandleCable.Upgrade: %v", err)
		return
	}

	if err := h.uc.Register(ctx, websocket.ConnectionInput{Scope: sc, Conn: conn}); err != nil {
		h.logger.Warnf(ctx, "internal.websocket.delivery.http.HandleCable.Register: %v", err)
		msg := gws.FormatCloseMessage(gws.CloseTryAgainLater, h.mapError(err).Error())
		_ = conn.WriteControl(gws.CloseMessage, msg, time.Now().Add(closeWriteWait))
		conn.Close()
	}
}
