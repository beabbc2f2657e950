package eventbus_test

import (
	"testing"
	"time"

	"transtrack/internal/adapters/out/eventbus"
	"transtrack/internal/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillEventPublisher_Publish_DeliversKindAndPayload(t *testing.T) {
	bus := eventbus.NewGoChannelBus(watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })

	messages, err := bus.Subscribe(t.Context(), events.KindOrderClosed)
	require.NoError(t, err)

	publisher := eventbus.NewWatermillEventPublisher(bus)
	event := events.OrderClosed{
		OrderID:  "8f14e45f-ea6a-4a3c-9d1b-2b6f0e9c1a77",
		Number:   "ORD-20260829-a1b2c3",
		ClosedBy: "ops.manager",
		ClosedAt: time.Now().UTC(),
	}

	err = publisher.Publish(t.Context(), event)
	require.NoError(t, err)

	select {
	case msg := <-messages:
		assert.Equal(t, events.KindOrderClosed, msg.Metadata.Get(eventbus.MetadataKind))
		assert.Contains(t, string(msg.Payload), `"number":"ORD-20260829-a1b2c3"`)
		assert.Contains(t, string(msg.Payload), `"closed_by":"ops.manager"`)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("expected a message on the order.closed topic")
	}
}
