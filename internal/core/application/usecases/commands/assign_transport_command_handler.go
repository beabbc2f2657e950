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

// AssignTransportCommandHandler attaches a vehicle and driver to an order.
type AssignTransportCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignTransportCommandHandler creates a handler for transport
// assignment.
func NewAssignTransportCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AssignTransportCommandHandler {
	return AssignTransportCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logging.WithComponent("assign_transport"),
	}
}

// Handle processes the assignment command. The order must be in draft or
// pending; the domain enforces that rule.
func (h *AssignTransportCommandHandler) Handle(ctx context.Context, cmd AssignTransportCommand) error {
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
	if err = aggregate.Assign(cmd.VehicleID(), cmd.DriverID(), cmd.Actor()); err != nil {
		return err
	}
	if cmd.CarrierID() != "" {
		if err = aggregate.SetCarrier(cmd.CarrierID()); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.IncrementStatusTransition(aggregate.Status().String())
	publishEvent(ctx, h.logger, h.publisher, events.OrderStatusChanged{
		OrderID:    aggregate.ID().String(),
		Number:     aggregate.Number(),
		From:       from.String(),
		To:         aggregate.Status().String(),
		Actor:      cmd.Actor(),
		Reason:     "vehicle and driver assigned",
		Completion: aggregate.CompletionPercent(),
		ChangedAt:  time.Now().UTC(),
	})

	return nil
}
