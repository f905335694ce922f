package http

import (
	"errors"
	"net/http"

	"chat-realtime/internal/broadcast"
	pkgErrors "chat-realtime/pkg/errors"
)

var (
	errWrongBody             = pkgErrors.NewHTTPError(120001, "Wrong body", http.StatusBadRequest)
	errInvalidConversationID = pkgErrors.NewHTTPError(120002, "Invalid conversation id", http.StatusBadRequest)
	errInvalidMessageID      = pkgErrors.NewHTTPError(120003, "Invalid message id", http.StatusBadRequest)
	errInvalidUserID         = pkgErrors.NewHTTPError(120004, "Invalid user id", http.StatusBadRequest)
	errInvalidNotificationID = pkgErrors.NewHTTPError(120005, "Invalid notification id", http.StatusBadRequest)
	errInvalidReaction       = pkgErrors.NewHTTPError(120006, "Invalid reaction", http.StatusBadRequest)
	errActionRequired        = pkgErrors.NewHTTPError(120007, "Action is required", http.StatusBadRequest)
)

func (h Handler) mapError(err error) error {
	switch {
	case errors.Is(err, broadcast.ErrInvalidConversationID):
		return errInvalidConversationID
	case errors.Is(err, broadcast.ErrInvalidMessageID):
		return errInvalidMessageID
	case errors.Is(err, broadcast.ErrInvalidUserID):
		return errInvalidUserID
	case errors.Is(err, broadcast.ErrInvalidNotificationID):
		return errInvalidNotificationID
	case errors.Is(err, broadcast.ErrInvalidReactionAction), errors.Is(err, broadcast.ErrEmojiRequired):
		return errInvalidReaction
	case errors.Is(err, broadcast.ErrActionRequired):
		return errActionRequired
	}
	return err
}
