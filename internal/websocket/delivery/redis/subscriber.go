package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat-realtime/internal/alert"
	"chat-realtime/internal/model"
	"chat-realtime/internal/websocket"

	goredis "github.com/redis/go-redis/v9"
)

const alertTimeout = 15 * time.Second

// Start subscribes to the stream patterns and waits for Redis to confirm before returning.
func (s *subscriber) Start() error {
	patterns := model.StreamPatterns()

	s.pubsub = s.redis.PSubscribe(s.ctx, patterns...)
	if _, err := s.pubsub.Receive(s.ctx); err != nil {
		_ = s.pubsub.Close()
		s.pubsub = nil
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.wg.Add(1)
	go s.listen()

	s.logger.Infof(s.ctx, "Redis subscriber started on patterns: %v", patterns)
	return nil
}

func (s *subscriber) listen() {
	defer s.wg.Done()

	for {
		msg, err := s.pubsub.ReceiveMessage(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, goredis.ErrClosed) {
				return
			}
			s.logger.Errorf(s.ctx, "internal.websocket.delivery.redis.listen: %v", err)
			s.reportDown(err)

			// go-redis reconnects on the next receive.
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(s.backoff):
			}
			continue
		}
		s.handleMessage(s.ctx, msg)
	}
}

func (s *subscriber) handleMessage(ctx context.Context, msg *goredis.Message) {
	err := s.uc.ProcessMessage(ctx, websocket.ProcessMessageInput{
		Stream:  msg.Channel,
		Payload: []byte(msg.Payload),
	})
	if err != nil {
		s.logger.Warnf(ctx, "internal.websocket.delivery.redis.handleMessage: stream=%s: %v", msg.Channel, err)
	}
}

func (s *subscriber) reportDown(cause error) {
	if s.alertUC == nil {
		return
	}

	stats, err := s.uc.GetStats(s.ctx)
	if err != nil {
		s.logger.Warnf(s.ctx, "internal.websocket.delivery.redis.reportDown.GetStats: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), alertTimeout)
	defer cancel()
	if err := s.alertUC.DispatchSubscriberDown(ctx, alert.SubscriberDownInput{
		Patterns:    model.StreamPatterns(),
		Err:         cause,
		Connections: stats.ActiveConnections,
		At:          time.Now(),
	}); err != nil {
		s.logger.Warnf(s.ctx, "internal.websocket.delivery.redis.reportDown.DispatchSubscriberDown: %v", err)
	}
}

// Shutdown stops the listener and closes the subscription.
func (s *subscriber) Shutdown(ctx context.Context) error {
	s.cancel()

	var err error
	if s.pubsub != nil {
		if err = s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "failed to close pubsub: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof(ctx, "Redis subscriber stopped")
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
