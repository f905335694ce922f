package repository

// ListParticipantsOptions filters a participant listing.
type ListParticipantsOptions struct {
	ConversationID int64
	// UserIDs narrows the listing to these users when non-empty.
	UserIDs []int64
}
