package commands

import (
	"context"
	"log/slog"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/ports"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/logging"
)

// DispatchOrderSyncCommandHandler pushes queued orders to the external
// planning system. A failed push is recorded on the order's sync status,
// first as retry, then as a permanent error on the second failure; it
// never fails the dispatch run.
type DispatchOrderSyncCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.SyncGateway
	logger     *slog.Logger
}

// NewDispatchOrderSyncCommandHandler creates a handler for sync dispatch.
func NewDispatchOrderSyncCommandHandler(uowFactory OrderUoWFactory, gateway ports.SyncGateway) DispatchOrderSyncCommandHandler {
	return DispatchOrderSyncCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logging.WithComponent("sync_dispatch"),
	}
}

// Handle pushes up to cmd.Limit() queued orders, one transaction per
// order so a late failure never rolls back earlier outcomes.
func (h *DispatchOrderSyncCommandHandler) Handle(ctx context.Context, cmd DispatchOrderSyncCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.loadPending(ctx)
	if err != nil {
		return err
	}
	if len(pending) > cmd.Limit() {
		pending = pending[:cmd.Limit()]
	}

	for _, aggregate := range pending {
		if err := h.dispatchOne(ctx, aggregate); err != nil {
			h.logger.Error("failed to persist sync outcome",
				"order", aggregate.Number(), "error", err)
		}
	}

	return nil
}

func (h *DispatchOrderSyncCommandHandler) loadPending(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OrderRepository().GetAllPendingSync(ctx)
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return pending, nil
}

func (h *DispatchOrderSyncCommandHandler) dispatchOne(ctx context.Context, aggregate *order.Order) error {
	wasRetry := aggregate.SyncStatus() == order.SyncStatusRetry
	aggregate.MarkSyncSending()

	if err := h.gateway.Send(ctx, aggregate); err != nil {
		// one automatic retry, then the failure sticks until requeued
		aggregate.MarkSyncFailed(err.Error(), !wasRetry)
		metrics.IncrementSyncAttempt("failure")
		h.logger.Warn("sync push failed", "order", aggregate.Number(),
			"will_retry", !wasRetry, "error", err)
	} else {
		aggregate.MarkSyncSent()
		metrics.IncrementSyncAttempt("success")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
