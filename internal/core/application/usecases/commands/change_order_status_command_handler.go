package commands

import (
	"context"
	"log/slog"
	"time"

	"transtrack/internal/core/ports"
	"transtrack/internal/events"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/logging"
)

// ChangeOrderStatusCommandHandler applies caller-requested status
// transitions. The state machine lives in the domain; this handler only
// loads, mutates, persists and announces.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logging.WithComponent("change_order_status"),
	}
}

// Handle processes the status change command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	from := aggregate.Status()
	if err = aggregate.ChangeStatus(cmd.Target(), cmd.Actor(), cmd.Reason()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if from != aggregate.Status() {
		metrics.IncrementStatusTransition(aggregate.Status().String())
		publishEvent(ctx, h.logger, h.publisher, events.OrderStatusChanged{
			OrderID:    aggregate.ID().String(),
			Number:     aggregate.Number(),
			From:       from.String(),
			To:         aggregate.Status().String(),
			Actor:      cmd.Actor(),
			Reason:     cmd.Reason(),
			Completion: aggregate.CompletionPercent(),
			ChangedAt:  time.Now().UTC(),
		})
	}

	return nil
}
