// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"
	"log/slog"

	"transtrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TemplateRepoFactory provides access to the template repository
	// within a transaction.
	TemplateRepoFactory interface {
		TemplateRepository() ports.TemplateRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TemplateUoW manages transactions for template-only operations.
	TemplateUoW interface {
		TxManager
		TemplateRepoFactory
	}

	// TemplateUoWFactory creates new template unit of work instances.
	TemplateUoWFactory interface {
		Create() TemplateUoW
	}

	// UoW manages transactions across order and template aggregates.
	// Used by commands that read templates while writing orders.
	UoW interface {
		TxManager
		OrderRepoFactory
		TemplateRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// publishEvent pushes an event onto the bus after a successful commit.
// Publishing is best-effort: a bus failure is logged, never propagated.
func publishEvent(ctx context.Context, logger *slog.Logger, publisher ports.EventPublisher, event ports.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event", "kind", event.Kind(), "error", err)
	}
}
