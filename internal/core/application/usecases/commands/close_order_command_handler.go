package commands

import (
	"context"
	"log/slog"
	"time"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/ports"
	"transtrack/internal/events"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/logging"
)

// CloseOrderCommandHandler performs administrative closure. Closure is
// terminal; the domain refuses it while any milestone is still pending and
// reports how many.
type CloseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCloseOrderCommandHandler creates a handler for order closure.
func NewCloseOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logging.WithComponent("close_order"),
	}
}

// Handle processes the closure command.
func (h *CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	record := order.ClosureRecord{
		Observations:     cmd.Observations(),
		Incidents:        cmd.Incidents(),
		DeviationReasons: cmd.DeviationReasons(),
		ClosedBy:         cmd.ClosedBy(),
		ClosedAt:         time.Now().UTC(),
	}
	if err = aggregate.Close(record); err != nil {
		return err
	}
	aggregate.MarkSyncPending()

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.IncrementStatusTransition(aggregate.Status().String())
	publishEvent(ctx, h.logger, h.publisher, events.OrderClosed{
		OrderID:  aggregate.ID().String(),
		Number:   aggregate.Number(),
		ClosedBy: cmd.ClosedBy(),
		ClosedAt: record.ClosedAt,
	})

	return nil
}
