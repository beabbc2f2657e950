// Package eventbus adapts the core's EventPublisher port to watermill.
// Events are serialized to JSON and published on a topic equal to their
// kind, with the kind repeated in message metadata for router-side
// filtering.
package eventbus

import (
	"context"
	"encoding/json"

	"transtrack/internal/core/ports"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// MetadataKind is the metadata key carrying the event kind.
const MetadataKind = "kind"

// WatermillEventPublisher implements ports.EventPublisher on top of any
// watermill publisher.
type WatermillEventPublisher struct {
	publisher message.Publisher
}

// NewWatermillEventPublisher wraps a watermill publisher.
func NewWatermillEventPublisher(publisher message.Publisher) *WatermillEventPublisher {
	return &WatermillEventPublisher{publisher: publisher}
}

// Publish serializes the event and pushes it onto the bus.
func (p *WatermillEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataKind, event.Kind())
	msg.SetContext(ctx)

	return p.publisher.Publish(event.Kind(), msg)
}

// NewGoChannelBus creates the in-process pub/sub used by the service. The
// same instance serves publishers and subscribers.
func NewGoChannelBus(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 1000,
			Persistent:          false,
		},
		logger,
	)
}
