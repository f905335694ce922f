package model

import (
	"errors"
	"strconv"
	"strings"
)

const (
	conversationStreamPrefix = "conversation:"
	userStreamPrefix         = "user:"

	// ConversationStreamPattern and UserStreamPattern match every stream of their kind.
	ConversationStreamPattern = conversationStreamPrefix + "*"
	UserStreamPattern         = userStreamPrefix + "*"
)

var ErrInvalidStream = errors.New("invalid stream name")

// ConversationStream names the stream carrying a conversation's events.
func ConversationStream(conversationID int64) string {
	return conversationStreamPrefix + strconv.FormatInt(conversationID, 10)
}

// UserStream names the stream carrying one user's personal events.
func UserStream(userID int64) string {
	return userStreamPrefix + strconv.FormatInt(userID, 10)
}

// StreamPatterns are the patterns the cable subscriber listens on.
func StreamPatterns() []string {
	return []string{ConversationStreamPattern, UserStreamPattern}
}

// IsStream reports whether name is a well-formed conversation or user stream.
func IsStream(name string) bool {
	for _, prefix := range []string{conversationStreamPrefix, userStreamPrefix} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			id, err := strconv.ParseInt(rest, 10, 64)
			return err == nil && id > 0
		}
	}
	return false
}
