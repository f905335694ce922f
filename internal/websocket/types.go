package websocket

import (
	"chat-realtime/internal/model"

	"github.com/gorilla/websocket"
)

// ConnectionInput is an authenticated, upgraded socket.
type ConnectionInput struct {
	Scope model.Scope
	Conn  *websocket.Conn
}

// ProcessMessageInput is a raw payload published on a stream.
type ProcessMessageInput struct {
	Stream  string
	Payload []byte
}

type HubStats struct {
	ActiveConnections int   `json:"active_connections"`
	TotalUniqueUsers  int   `json:"total_unique_users"`
	ActiveStreams     int   `json:"active_streams"`
	Subscriptions     int   `json:"subscriptions"`
	MessagesReceived  int64 `json:"messages_received"`
	MessagesSent      int64 `json:"messages_sent"`
	MessagesDropped   int64 `json:"messages_dropped"`
	CommandsRejected  int64 `json:"commands_rejected"`
}
