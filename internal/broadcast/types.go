package broadcast

import (
	"time"

	"chat-realtime/pkg/cable"
)

// UserSnapshot is the public profile of a user at dispatch time.
type UserSnapshot struct {
	ID        int64
	Name      string
	AvatarURL *string
}

// AttachmentSnapshot describes a stored file. When URL is empty and ObjectKey
// is set, a presigned download URL is generated at dispatch.
type AttachmentSnapshot struct {
	ID          int64
	Filename    string
	ContentType string
	ByteSize    int64
	URL         string
	ObjectKey   string
}

// ReactionSnapshot is one user's reaction on a message.
type ReactionSnapshot struct {
	UserID int64
	Emoji  string
}

// MessageSnapshot is a message as committed by the write path.
type MessageSnapshot struct {
	ID             int64
	ConversationID int64
	Body           string
	Author         UserSnapshot
	CreatedAt      time.Time
	Attachments    []AttachmentSnapshot
	Reactions      []ReactionSnapshot

	// ParticipantIDs lists who gets a conversation_refresh. Nil means load from the store.
	ParticipantIDs []int64
}

// NotificationSnapshot is a notification addressed to a single recipient.
type NotificationSnapshot struct {
	ID             int64
	RecipientID    int64
	Action         string
	Summary        string
	ActorAvatarURL *string
	CreatedAt      time.Time
}

func (m MessageSnapshot) Validate() error {
	if m.ID <= 0 {
		return ErrInvalidMessageID
	}
	if m.ConversationID <= 0 {
		return ErrInvalidConversationID
	}
	if m.Author.ID <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

func (n NotificationSnapshot) Validate() error {
	if n.ID <= 0 {
		return ErrInvalidNotificationID
	}
	if n.RecipientID <= 0 {
		return ErrInvalidUserID
	}
	if n.Action == "" {
		return ErrActionRequired
	}
	return nil
}

// ValidateReaction checks the last-actor fields of a reactions update.
func ValidateReaction(lastActorID int64, emoji string, action cable.ReactionAction) error {
	if lastActorID <= 0 {
		return ErrInvalidUserID
	}
	if emoji == "" {
		return ErrEmojiRequired
	}
	if !action.IsValid() {
		return ErrInvalidReactionAction
	}
	return nil
}
