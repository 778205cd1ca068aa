package ports

import "context"

// EventPublisher delivers domain events to their handlers after the producing
// transaction has committed. Delivery is at-least-once within the process;
// handler failures must not propagate back to the publishing command.
type EventPublisher interface {
	Publish(ctx context.Context, event any)
}
