package commands

import (
	"context"
)

// RemoveMilestoneCommandHandler drops a checkpoint from an order's route
// plan. The domain keeps the plan at two milestones minimum and refuses to
// remove checkpoints already reached.
type RemoveMilestoneCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveMilestoneCommandHandler creates a handler for milestone
// removal.
func NewRemoveMilestoneCommandHandler(uowFactory OrderUoWFactory) RemoveMilestoneCommandHandler {
	return RemoveMilestoneCommandHandler{uowFactory: uowFactory}
}

// Handle processes the removal command.
func (h *RemoveMilestoneCommandHandler) Handle(ctx context.Context, cmd RemoveMilestoneCommand) error {
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

	if err = aggregate.RemoveMilestone(cmd.MilestoneID(), cmd.Actor()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
