package commands

import (
	"context"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
)

// InsertMilestoneCommandHandler adds a checkpoint to an order's route
// plan. Adding work can undo completion; the domain rederives the status
// accordingly.
type InsertMilestoneCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewInsertMilestoneCommandHandler creates a handler for milestone
// insertion.
func NewInsertMilestoneCommandHandler(uowFactory OrderUoWFactory) InsertMilestoneCommandHandler {
	return InsertMilestoneCommandHandler{uowFactory: uowFactory}
}

// Handle processes the insertion command.
func (h *InsertMilestoneCommandHandler) Handle(ctx context.Context, cmd InsertMilestoneCommand) error {
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

	input := cmd.Milestone()
	m, err := order.NewMilestone(kernel.NewUUID(), input.Name, input.Address,
		input.Point, input.EstimatedArrival, input.EstimatedDeparture)
	if err != nil {
		return err
	}

	if err = aggregate.AddMilestone(m, cmd.Position(), cmd.Actor()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
