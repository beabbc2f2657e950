package commands

import (
	"context"

	"transtrack/internal/pkg/errs"
)

// DeleteOrderCommandHandler removes a draft order. Anything past draft
// must be cancelled instead of deleted.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	if !aggregate.CanDelete() {
		return errs.NewInvalidOperationError("delete order",
			"only draft orders can be deleted, cancel it instead")
	}

	if err = repo.Remove(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
