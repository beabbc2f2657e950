package ports

import "context"

// Event is anything the core can announce to the outside world. Kind is
// the routing key; the payload is the event value itself.
type Event interface {
	Kind() string
}

// EventPublisher pushes domain events onto the message bus. Publishing is
// best-effort from the core's point of view: handlers log failures but do
// not roll back the business operation.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
