package ports

import (
	"context"

	"transtrack/internal/core/domain/model/order"
)

// SyncGateway pushes order snapshots to the external planning system.
// Outcomes land on the order's sync status; a failed push never fails the
// business operation that queued it.
type SyncGateway interface {
	// Send transmits the order. A nil error means the remote system
	// acknowledged it.
	Send(ctx context.Context, aggregate *order.Order) error
}
