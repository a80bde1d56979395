package events

import "context"

var (
	_ Publisher  = (*NoopPublisher)(nil)
	_ Publisher  = (*NATSPublisher)(nil)
	_ Subscriber = (*NATSSubscriber)(nil)
)

// NoopPublisher discards listing events. The controller uses it when no
// NATS server is configured.
type NoopPublisher struct{}

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (*NoopPublisher) Close() error { return nil }
