package events

import (
	"context"
	"fmt"
	"time"
)

// Subscriber is a source of upstream change notifications.
type Subscriber interface {
	// Subscribe delivers raw payloads for topic until cancel is called,
	// after which the channel is closed.
	Subscribe(topic string) (ch <-chan []byte, cancel func(), err error)
	Close() error
}

// Follow subscribes to topic and calls refresh once per burst of messages,
// after the stream has been quiet for the debounce interval. A value on
// reconnect triggers an immediate refresh so changes missed while
// disconnected are picked up. Follow returns when ctx is done or the
// subscription channel closes.
func Follow(ctx context.Context, sub Subscriber, topic string, debounce time.Duration, reconnect <-chan struct{}, refresh func()) error {
	ch, cancel, err := sub.Subscribe(topic)
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	timer := time.NewTimer(0)
	timer.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-timer.C:
	default:
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			timer.Reset(debounce)
		case <-reconnect:
			timer.Reset(0)
		case <-timer.C:
			refresh()
		}
	}
}
