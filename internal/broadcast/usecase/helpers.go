package usecase

import (
	"context"
	"errors"
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/internal/broadcast"
	"chat-realtime/internal/conversation/repository"
	"chat-realtime/internal/model"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/minio"
)

const alertTimeout = 15 * time.Second

var errNoParticipantSource = errors.New("participant ids not provided and no participant store configured")

func (uc *implUseCase) publish(ctx context.Context, stream string, payload cable.Payload) {
	err := uc.pub.Publish(ctx, stream, payload)
	if err == nil {
		return
	}

	uc.l.Errorf(ctx, "internal.broadcast.usecase.publish: stream=%s type=%s: %v", stream, payload.EventType(), err)
	if uc.alert == nil {
		return
	}

	input := alert.PublishFailureInput{
		Stream:    stream,
		EventType: payload.EventType().String(),
		Err:       err,
		At:        uc.clock(),
	}
	go func() {
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
		defer cancel()
		if err := uc.alert.DispatchPublishFailure(actx, input); err != nil {
			uc.l.Warnf(actx, "internal.broadcast.usecase.publish.DispatchPublishFailure: %v", err)
		}
	}()
}

// participantIDs returns the refresh recipients in the order given. Caller
// duplicates are kept: each entry gets its own publish.
func (uc *implUseCase) participantIDs(ctx context.Context, msg broadcast.MessageSnapshot) ([]int64, error) {
	ids := msg.ParticipantIDs
	if ids == nil {
		var err error
		if ids, err = uc.loadParticipantIDs(ctx, msg.ConversationID); err != nil {
			return nil, err
		}
	}

	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out, nil
}

func (uc *implUseCase) loadParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	if item := uc.participants.Get(conversationID); item != nil {
		return item.Value(), nil
	}
	if uc.repo == nil {
		return nil, errNoParticipantSource
	}

	ps, err := uc.repo.ListParticipants(ctx, repository.ListParticipantsOptions{ConversationID: conversationID})
	if err != nil {
		return nil, err
	}
	ids := model.ParticipantIDs(ps)
	uc.participants.Set(conversationID, ids, uc.opts.ParticipantTTL)
	return ids, nil
}

func (uc *implUseCase) attachments(ctx context.Context, in []broadcast.AttachmentSnapshot) []cable.Attachment {
	out := make([]cable.Attachment, 0, len(in))
	for _, a := range in {
		url := a.URL
		if url == "" && a.ObjectKey != "" && uc.storage != nil {
			presigned, err := uc.storage.PresignedGetURL(ctx, uc.opts.Bucket, a.ObjectKey, a.Filename, uc.opts.PresignTTL)
			if err != nil {
				uc.l.Warnf(ctx, "internal.broadcast.usecase.attachments.PresignedGetURL: object=%s code=%s: %v", a.ObjectKey, minio.CodeOf(err), err)
			} else {
				url = presigned
			}
		}
		out = append(out, cable.Attachment{
			ID:          a.ID,
			Filename:    a.Filename,
			ContentType: a.ContentType,
			ByteSize:    a.ByteSize,
			URL:         url,
		})
	}
	return out
}

// tally counts reactions per emoji.
func tally(reactions []broadcast.ReactionSnapshot) map[string]int {
	counts := make(map[string]int)
	for _, r := range reactions {
		if r.Emoji == "" {
			continue
		}
		counts[r.Emoji]++
	}
	return counts
}
