package postgre

import (
	"fmt"
	"strings"
	"time"

	"chat-realtime/internal/conversation/repository"
	"chat-realtime/internal/model"
	postgres "chat-realtime/pkg/postgre"

	"github.com/aarondl/null/v8"
)

const (
	participantColumns = `cp.conversation_id, cp.user_id,
		COALESCE(NULLIF(u.full_name, ''), u.username) AS display_name,
		u.avatar_url, cp.created_at AS joined_at, cp.last_read_at`

	participantFrom = `FROM conversation_participants cp
		JOIN users u ON u.id = cp.user_id`

	isParticipantQuery = `SELECT EXISTS (
		SELECT 1 FROM conversation_participants
		WHERE conversation_id = $1 AND user_id = $2
	) AS found`
)

type participantRow struct {
	ConversationID int64       `boil:"conversation_id"`
	UserID         int64       `boil:"user_id"`
	DisplayName    string      `boil:"display_name"`
	AvatarURL      null.String `boil:"avatar_url"`
	JoinedAt       time.Time   `boil:"joined_at"`
	LastReadAt     null.Time   `boil:"last_read_at"`
}

type existsRow struct {
	Found bool `boil:"found"`
}

func (r participantRow) toModel() model.Participant {
	p := model.Participant{
		ConversationID: r.ConversationID,
		UserID:         r.UserID,
		DisplayName:    r.DisplayName,
		JoinedAt:       r.JoinedAt,
	}
	if r.AvatarURL.Valid {
		p.AvatarURL = r.AvatarURL.Ptr()
	}
	if r.LastReadAt.Valid {
		p.LastReadAt = r.LastReadAt.Ptr()
	}
	return p
}

func buildListParticipantsQuery(opts repository.ListParticipantsOptions) (string, []any, error) {
	if !postgres.IsValidID(opts.ConversationID) {
		return "", nil, repository.ErrInvalidConversationID
	}

	var sb strings.Builder
	args := []any{opts.ConversationID}

	sb.WriteString("SELECT ")
	sb.WriteString(participantColumns)
	sb.WriteString(" ")
	sb.WriteString(participantFrom)
	sb.WriteString(" WHERE cp.conversation_id = $1")

	if len(opts.UserIDs) > 0 {
		if err := postgres.ValidateIDs(opts.UserIDs); err != nil {
			return "", nil, fmt.Errorf("%w: %v", repository.ErrInvalidUserID, err)
		}
		args = append(args, postgres.Int64Array(opts.UserIDs))
		sb.WriteString(fmt.Sprintf(" AND cp.user_id = ANY($%d)", len(args)))
	}

	sb.WriteString(" ORDER BY cp.created_at ASC, cp.user_id ASC")
	return sb.String(), args, nil
}
