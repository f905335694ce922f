package alert

import "context"

// UseCase reports realtime delivery problems to the operations channel.
type UseCase interface {
	DispatchPublishFailure(ctx context.Context, input PublishFailureInput) error
	DispatchSubscriberDown(ctx context.Context, input SubscriberDownInput) error
}
