package postgre

import (
	"context"

	"chat-realtime/internal/conversation/repository"
	"chat-realtime/internal/model"
	postgres "chat-realtime/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
)

func (r *implRepository) ListParticipants(ctx context.Context, opts repository.ListParticipantsOptions) ([]model.Participant, error) {
	query, args, err := buildListParticipantsQuery(opts)
	if err != nil {
		r.l.Errorf(ctx, "internal.conversation.repository.postgre.ListParticipants.buildListParticipantsQuery: %v", err)
		return nil, err
	}

	var rows []participantRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.conversation.repository.postgre.ListParticipants.Bind: %v", err)
		return nil, errors.Wrap(err, "list participants")
	}

	res := make([]model.Participant, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}
	return res, nil
}

func (r *implRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	if !postgres.IsValidID(conversationID) {
		return false, repository.ErrInvalidConversationID
	}
	if !postgres.IsValidID(userID) {
		return false, repository.ErrInvalidUserID
	}

	var row existsRow
	if err := queries.Raw(isParticipantQuery, conversationID, userID).Bind(ctx, r.db, &row); err != nil {
		r.l.Errorf(ctx, "internal.conversation.repository.postgre.IsParticipant.Bind: %v", err)
		return false, errors.Wrapf(err, "check participant %d in conversation %d", userID, conversationID)
	}
	return row.Found, nil
}
