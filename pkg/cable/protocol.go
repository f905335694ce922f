package cable

import "encoding/json"

// Sub-protocols offered during the WebSocket handshake. The server picks the
// JSON one; the second token only exists so old servers can reject cleanly.
const (
	ProtocolJSON        = "actioncable-v1-json"
	ProtocolUnsupported = "actioncable-unsupported"
)

// Logical channel names carried in the "channel" field of an identifier.
const (
	ChannelChat = "ChatChannel"
	ChannelUser = "UserChannel"
)

// Commands sent by the client.
const (
	CommandSubscribe   = "subscribe"
	CommandUnsubscribe = "unsubscribe"
)

// Housekeeping frame types sent by the server. None of them carry both an
// identifier and a message, so the router never dispatches them.
const (
	TypeWelcome             = "welcome"
	TypePing                = "ping"
	TypeDisconnect          = "disconnect"
	TypeConfirmSubscription = "confirm_subscription"
	TypeRejectSubscription  = "reject_subscription"
)

// Command is an outbound client frame.
type Command struct {
	Command    string `json:"command"`
	Identifier string `json:"identifier"`
}

// Frame is an inbound server frame. Event frames carry Identifier and
// Message; housekeeping frames carry Type.
type Frame struct {
	Type       string          `json:"type,omitempty"`
	Identifier string          `json:"identifier,omitempty"`
	Message    json.RawMessage `json:"message,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}

// IsEvent reports whether f should be routed to subscription handlers.
func (f Frame) IsEvent() bool {
	return f.Identifier != "" && len(f.Message) > 0 && string(f.Message) != "null"
}
