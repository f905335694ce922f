package alert

import "time"

// PublishFailureInput describes a broadcast that could not be handed to the pub/sub layer.
type PublishFailureInput struct {
	Stream    string
	EventType string // e.g. "message_created", "typing_indicator"
	Err       error
	At        time.Time
}

// SubscriberDownInput describes the fan-out subscriber losing its pub/sub connection.
type SubscriberDownInput struct {
	Patterns    []string
	Err         error
	Connections int
	At          time.Time
}
