package broadcast

import "errors"

var (
	ErrInvalidConversationID = errors.New("invalid conversation id")
	ErrInvalidMessageID      = errors.New("invalid message id")
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidNotificationID = errors.New("invalid notification id")
	ErrInvalidReactionAction = errors.New("invalid reaction action")
	ErrEmojiRequired         = errors.New("emoji is required")
	ErrActionRequired        = errors.New("action is required")
)
