package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"chat-realtime/internal/model"
	"chat-realtime/pkg/cable"
)

func (p *publisher) Publish(ctx context.Context, stream string, payload cable.Payload) error {
	if !model.IsStream(stream) {
		return fmt.Errorf("%w: %q", model.ErrInvalidStream, stream)
	}
	if payload == nil || !payload.EventType().IsValid() {
		return cable.ErrUnknownEventType
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", payload.EventType(), err)
	}

	receivers, err := p.redis.Publish(ctx, stream, data)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", payload.EventType(), stream, err)
	}

	p.logger.Debugf(ctx, "internal.broadcast.delivery.redis.Publish: stream=%s type=%s receivers=%d", stream, payload.EventType(), receivers)
	return nil
}
