package http

import (
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// MessageCreated godoc
// @Summary Broadcast a new message
// @Description Publishes message_created to the conversation stream and conversation_refresh to every participant's user stream.
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param X-Internal-Key header string true "Internal API key"
// @Param body body messageReq true "Message snapshot"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /internal/api/v1/broadcasts/messages [POST]
func (h Handler) MessageCreated(c *gin.Context) {
	var req messageReq
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err, h.discord)
		return
	}

	h.uc.DispatchMessageCreated(c.Request.Context(), req.toSnapshot())
	response.OK(c, acceptedResp{Accepted: true})
}

// ReactionsUpdated godoc
// @Summary Broadcast a reaction change
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param X-Internal-Key header string true "Internal API key"
// @Param body body reactionsReq true "Message with its current reactions and the last actor"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /internal/api/v1/broadcasts/reactions [POST]
func (h Handler) ReactionsUpdated(c *gin.Context) {
	var req reactionsReq
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err, h.discord)
		return
	}

	h.uc.DispatchReactionsUpdated(c.Request.Context(), req.Message.toSnapshot(), req.LastActorID, req.LastActorEmoji, cable.ReactionAction(req.LastActorAction))
	response.OK(c, acceptedResp{Accepted: true})
}

// TypingIndicator godoc
// @Summary Broadcast a typing indicator
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param X-Internal-Key header string true "Internal API key"
// @Param body body typingReq true "Typing state"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /internal/api/v1/broadcasts/typing [POST]
func (h Handler) TypingIndicator(c *gin.Context) {
	var req typingReq
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err, h.discord)
		return
	}

	h.uc.DispatchTypingIndicator(c.Request.Context(), req.ConversationID, req.User.toSnapshot(), req.IsTyping)
	response.OK(c, acceptedResp{Accepted: true})
}

// MessageRead godoc
// @Summary Broadcast a read receipt
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param X-Internal-Key header string true "Internal API key"
// @Param body body readReq true "Reader"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /internal/api/v1/broadcasts/reads [POST]
func (h Handler) MessageRead(c *gin.Context) {
	var req readReq
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err, h.discord)
		return
	}

	h.uc.DispatchMessageRead(c.Request.Context(), req.ConversationID, req.UserID)
	response.OK(c, acceptedResp{Accepted: true})
}

// Notification godoc
// @Summary Deliver a notification to its recipient
// @Tags Broadcast
// @Accept json
// @Produce json
// @Param X-Internal-Key header string true "Internal API key"
// @Param body body notificationReq true "Notification"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /internal/api/v1/broadcasts/notifications [POST]
func (h Handler) Notification(c *gin.Context) {
	var req notificationReq
	if err := h.bind(c, &req); err != nil {
		response.Error(c, err, h.discord)
		return
	}

	h.uc.DispatchNotification(c.Request.Context(), req.toSnapshot())
	response.OK(c, acceptedResp{Accepted: true})
}
