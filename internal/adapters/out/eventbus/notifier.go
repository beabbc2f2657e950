package eventbus

import (
	"context"
	"log/slog"

	"transtrack/internal/events"
	"transtrack/internal/pkg/logging"

	"github.com/ThreeDotsLabs/watermill/message"
)

// NotificationLogger drains the bus and logs every event. It stands in
// for real outbound notification channels (email, webhooks) which stay
// out of the core.
type NotificationLogger struct {
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewNotificationLogger creates a logger-backed subscriber.
func NewNotificationLogger(subscriber message.Subscriber) *NotificationLogger {
	return &NotificationLogger{
		subscriber: subscriber,
		logger:     logging.WithComponent("notifications"),
	}
}

// Start subscribes to every known event kind and consumes until ctx is
// cancelled.
func (n *NotificationLogger) Start(ctx context.Context) error {
	kinds := []string{
		events.KindOrderCreated,
		events.KindOrderStatusChanged,
		events.KindOrderClosed,
		events.KindEscalationTriggered,
		events.KindImportCompleted,
	}

	for _, kind := range kinds {
		messages, err := n.subscriber.Subscribe(ctx, kind)
		if err != nil {
			return err
		}
		go n.consume(messages)
	}

	return nil
}

func (n *NotificationLogger) consume(messages <-chan *message.Message) {
	for msg := range messages {
		n.logger.Info("event received",
			"kind", msg.Metadata.Get(MetadataKind),
			"payload", string(msg.Payload))
		msg.Ack()
	}
}
