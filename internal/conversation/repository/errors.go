package repository

import "errors"

var (
	ErrInvalidConversationID = errors.New("invalid conversation id")
	ErrInvalidUserID         = errors.New("invalid user id")
)
