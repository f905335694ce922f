package http

import (
	"errors"
	"net/http"

	"chat-realtime/internal/websocket"
	pkgErrors "chat-realtime/pkg/errors"
)

var (
	errMissingScope   = pkgErrors.NewUnauthorizedHTTPError()
	errNoSubprotocol  = pkgErrors.NewHTTPError(130001, "Unsupported cable protocol", http.StatusBadRequest)
	errMaxConnections = pkgErrors.NewHTTPError(130002, "Maximum connections reached", http.StatusServiceUnavailable)
	errCableShutdown  = pkgErrors.NewHTTPError(130003, "Cable is shutting down", http.StatusServiceUnavailable)
)

func (h Handler) mapError(err error) error {
	switch {
	case errors.Is(err, websocket.ErrMaxConnectionsReached):
		return errMaxConnections
	case errors.Is(err, websocket.ErrHubClosed):
		return errCableShutdown
	}
	return err
}
