package ports

import (
	"context"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Remove deletes an order outright. Only draft orders may be removed;
	// the caller checks that rule before calling.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetAllActive retrieves every order in a non-terminal status.
	// Used by the escalation sweep.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllPendingSync retrieves orders queued for dispatch to the
	// external planning system (sync status pending or retry).
	GetAllPendingSync(ctx context.Context) ([]*order.Order, error)
}
