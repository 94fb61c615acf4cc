package events

// EventPublisher defines the interface for sending and receiving change events.
// Services depend on this interface so tests can run without a bus.
type EventPublisher interface {
	// SendEvent queues an event for delivery
	SendEvent(event Event) error

	// Subscribe returns a channel of (batched) events and a function that
	// cancels the subscription
	Subscribe() (<-chan Event, func())

	// Close stops delivery, flushing anything pending
	Close() error
}

// Compile-time verification that *Bus implements EventPublisher
var _ EventPublisher = (*Bus)(nil)
