package adapter

import "context"

// Notifier fans out domain events to connected listeners. Implementations
// must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, topic string, payload map[string]string)
}
