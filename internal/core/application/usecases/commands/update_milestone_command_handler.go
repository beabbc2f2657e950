package commands

import (
	"context"

	"transtrack/internal/core/domain/model/order"
)

// UpdateMilestoneCommandHandler patches a checkpoint's estimated window
// and geofence link. Rescheduling may change how the order reads as a
// whole; the domain rederives the status accordingly.
type UpdateMilestoneCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateMilestoneCommandHandler creates a handler for milestone
// patches.
func NewUpdateMilestoneCommandHandler(uowFactory OrderUoWFactory) UpdateMilestoneCommandHandler {
	return UpdateMilestoneCommandHandler{uowFactory: uowFactory}
}

// Handle processes the patch command.
func (h *UpdateMilestoneCommandHandler) Handle(ctx context.Context, cmd UpdateMilestoneCommand) error {
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

	patch := order.MilestonePatch{
		EstimatedArrival:   cmd.EstimatedArrival(),
		EstimatedDeparture: cmd.EstimatedDeparture(),
		GeofenceID:         cmd.GeofenceID(),
	}
	if err = aggregate.UpdateMilestone(cmd.MilestoneID(), patch, cmd.Actor()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
