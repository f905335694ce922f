package http

import (
	"time"

	"chat-realtime/internal/broadcast"
	"chat-realtime/pkg/cable"
)

type userReq struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

func (r userReq) toSnapshot() broadcast.UserSnapshot {
	return broadcast.UserSnapshot{
		ID:        r.ID,
		Name:      r.Name,
		AvatarURL: r.AvatarURL,
	}
}

type attachmentReq struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	ByteSize    int64  `json:"byte_size"`
	URL         string `json:"url"`
	ObjectKey   string `json:"object_key"`
}

type reactionReq struct {
	UserID int64  `json:"user_id"`
	Emoji  string `json:"emoji"`
}

type messageReq struct {
	ID             int64           `json:"id"`
	ConversationID int64           `json:"conversation_id"`
	Body           string          `json:"body"`
	Author         userReq         `json:"author"`
	CreatedAt      time.Time       `json:"created_at"`
	Attachments    []attachmentReq `json:"attachments"`
	Reactions      []reactionReq   `json:"reactions"`
	// Omit to have participants loaded from the conversation store.
	ParticipantIDs []int64 `json:"participant_ids"`
}

func (r messageReq) validate() error {
	return r.toSnapshot().Validate()
}

func (r messageReq) toSnapshot() broadcast.MessageSnapshot {
	snap := broadcast.MessageSnapshot{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		Body:           r.Body,
		Author:         r.Author.toSnapshot(),
		CreatedAt:      r.CreatedAt,
		ParticipantIDs: r.ParticipantIDs,
	}
	for _, a := range r.Attachments {
		snap.Attachments = append(snap.Attachments, broadcast.AttachmentSnapshot(a))
	}
	for _, re := range r.Reactions {
		snap.Reactions = append(snap.Reactions, broadcast.ReactionSnapshot(re))
	}
	return snap
}

type reactionsReq struct {
	Message         messageReq `json:"message"`
	LastActorID     int64      `json:"last_actor_id"`
	LastActorEmoji  string     `json:"last_actor_emoji"`
	LastActorAction string     `json:"last_actor_action"`
}

func (r reactionsReq) validate() error {
	if r.Message.ID <= 0 {
		return broadcast.ErrInvalidMessageID
	}
	if r.Message.ConversationID <= 0 {
		return broadcast.ErrInvalidConversationID
	}
	return broadcast.ValidateReaction(r.LastActorID, r.LastActorEmoji, cable.ReactionAction(r.LastActorAction))
}

type typingReq struct {
	ConversationID int64   `json:"conversation_id"`
	User           userReq `json:"user"`
	IsTyping       bool    `json:"is_typing"`
}

func (r typingReq) validate() error {
	if r.ConversationID <= 0 {
		return broadcast.ErrInvalidConversationID
	}
	if r.User.ID <= 0 {
		return broadcast.ErrInvalidUserID
	}
	return nil
}

type readReq struct {
	ConversationID int64 `json:"conversation_id"`
	UserID         int64 `json:"user_id"`
}

func (r readReq) validate() error {
	if r.ConversationID <= 0 {
		return broadcast.ErrInvalidConversationID
	}
	if r.UserID <= 0 {
		return broadcast.ErrInvalidUserID
	}
	return nil
}

type notificationReq struct {
	ID             int64     `json:"id"`
	RecipientID    int64     `json:"recipient_id"`
	Action         string    `json:"action"`
	Summary        string    `json:"summary"`
	ActorAvatarURL *string   `json:"actor_avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r notificationReq) toSnapshot() broadcast.NotificationSnapshot {
	return broadcast.NotificationSnapshot(r)
}

type acceptedResp struct {
	Accepted bool `json:"accepted"`
}

func (r notificationReq) validate() error {
	return r.toSnapshot().Validate()
}
