package cable

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the discriminator carried in every broadcast message.
type EventType string

const (
	EventMessageCreated       EventType = "message_created"
	EventReactionsUpdated     EventType = "message_reactions_updated"
	EventTypingIndicator      EventType = "typing_indicator"
	EventMessageRead          EventType = "message_read"
	EventConversationRefresh  EventType = "conversation_refresh"
	EventNotificationReceived EventType = "notification_received"
)

// EventTypes lists every known event type.
func EventTypes() []EventType {
	return []EventType{
		EventMessageCreated,
		EventReactionsUpdated,
		EventTypingIndicator,
		EventMessageRead,
		EventConversationRefresh,
		EventNotificationReceived,
	}
}

// IsValid checks if the event type is one of the known kinds.
func (t EventType) IsValid() bool {
	switch t {
	case EventMessageCreated,
		EventReactionsUpdated,
		EventTypingIndicator,
		EventMessageRead,
		EventConversationRefresh,
		EventNotificationReceived:
		return true
	}
	return false
}

func (t EventType) String() string {
	return string(t)
}

// ReactionAction says whether the last actor added or removed a reaction.
type ReactionAction string

const (
	ReactionAdded   ReactionAction = "added"
	ReactionRemoved ReactionAction = "removed"
)

// IsValid checks if the action is added or removed.
func (a ReactionAction) IsValid() bool {
	return a == ReactionAdded || a == ReactionRemoved
}

// Payload is implemented by every event body.
type Payload interface {
	EventType() EventType
}

// Attachment is the download descriptor of a message attachment.
type Attachment struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	ByteSize    int64  `json:"byte_size"`
	URL         string `json:"url"`
}

// MessageCreated is published to a conversation stream for a new message.
type MessageCreated struct {
	Type            EventType      `json:"type"`
	ID              int64          `json:"id"`
	ConversationID  int64          `json:"conversation_id"`
	Body            string         `json:"body"`
	AuthorID        int64          `json:"author_id"`
	AuthorName      string         `json:"author_name"`
	AuthorAvatarURL *string        `json:"author_avatar_url"`
	CreatedAt       time.Time      `json:"created_at"`
	Attachments     []Attachment   `json:"attachments"`
	Reactions       map[string]int `json:"reactions"`
}

// ReactionsUpdated carries the fresh reaction tally of a message.
type ReactionsUpdated struct {
	Type            EventType      `json:"type"`
	MessageID       int64          `json:"message_id"`
	ConversationID  int64          `json:"conversation_id"`
	Reactions       map[string]int `json:"reactions"`
	LastActorID     int64          `json:"last_actor_id"`
	LastActorEmoji  string         `json:"last_actor_emoji"`
	LastActorAction ReactionAction `json:"last_actor_action"`
}

// TypingIndicator is transient; receivers clear it on their own timeout.
type TypingIndicator struct {
	Type           EventType `json:"type"`
	ConversationID int64     `json:"conversation_id"`
	UserID         int64     `json:"user_id"`
	UserName       string    `json:"user_name"`
	IsTyping       bool      `json:"is_typing"`
}

// MessageRead tells a conversation that a participant read up to ReadAt.
type MessageRead struct {
	Type           EventType `json:"type"`
	ConversationID int64     `json:"conversation_id"`
	UserID         int64     `json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}

// ConversationRefresh prompts a participant's conversation list to reload.
type ConversationRefresh struct {
	Type           EventType `json:"type"`
	ConversationID int64     `json:"conversation_id"`
	MessageID      int64     `json:"message_id,omitempty"`
}

// NotificationReceived is the minimal rendering payload of a notification.
type NotificationReceived struct {
	Type           EventType `json:"type"`
	ID             int64     `json:"id"`
	Action         string    `json:"action"`
	Summary        string    `json:"summary"`
	ActorAvatarURL *string   `json:"actor_avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
}

func (MessageCreated) EventType() EventType       { return EventMessageCreated }
func (ReactionsUpdated) EventType() EventType     { return EventReactionsUpdated }
func (TypingIndicator) EventType() EventType      { return EventTypingIndicator }
func (MessageRead) EventType() EventType          { return EventMessageRead }
func (ConversationRefresh) EventType() EventType  { return EventConversationRefresh }
func (NotificationReceived) EventType() EventType { return EventNotificationReceived }

// Event is a decoded broadcast message. Exactly one payload field matching
// Type is set.
type Event struct {
	Type                 EventType
	MessageCreated       *MessageCreated
	ReactionsUpdated     *ReactionsUpdated
	TypingIndicator      *TypingIndicator
	MessageRead          *MessageRead
	ConversationRefresh  *ConversationRefresh
	NotificationReceived *NotificationReceived
}

// Payload returns the set payload.
func (e Event) Payload() Payload {
	switch e.Type {
	case EventMessageCreated:
		return e.MessageCreated
	case EventReactionsUpdated:
		return e.ReactionsUpdated
	case EventTypingIndicator:
		return e.TypingIndicator
	case EventMessageRead:
		return e.MessageRead
	case EventConversationRefresh:
		return e.ConversationRefresh
	case EventNotificationReceived:
		return e.NotificationReceived
	}
	return nil
}

// DecodeEvent decodes a message body into its typed payload.
func DecodeEvent(raw json.RawMessage) (Event, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	ev := Event{Type: head.Type}
	var target any
	switch head.Type {
	case EventMessageCreated:
		ev.MessageCreated = &MessageCreated{}
		target = ev.MessageCreated
	case EventReactionsUpdated:
		ev.ReactionsUpdated = &ReactionsUpdated{}
		target = ev.ReactionsUpdated
	case EventTypingIndicator:
		ev.TypingIndicator = &TypingIndicator{}
		target = ev.TypingIndicator
	case EventMessageRead:
		ev.MessageRead = &MessageRead{}
		target = ev.MessageRead
	case EventConversationRefresh:
		ev.ConversationRefresh = &ConversationRefresh{}
		target = ev.ConversationRefresh
	case EventNotificationReceived:
		ev.NotificationReceived = &NotificationReceived{}
		target = ev.NotificationReceived
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEventType, head.Type)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return Event{}, fmt.Errorf("%w: %s: %v", ErrMalformedEvent, head.Type, err)
	}
	return ev, nil
}

// EventHandler adapts a typed callback to a Handler. Bodies that do not
// decode into a known event are dropped.
func EventHandler(fn func(Event)) Handler {
	return func(raw json.RawMessage) {
		ev, err := DecodeEvent(raw)
		if err != nil {
			return
		}
		fn(ev)
	}
}
