package commands

import (
	"context"
)

// DeleteTemplateCommandHandler deletes a template. Active or default
// templates are refused, they must be deactivated and demoted first.
type DeleteTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewDeleteTemplateCommandHandler creates a handler for template deletion.
func NewDeleteTemplateCommandHandler(uowFactory TemplateUoWFactory) DeleteTemplateCommandHandler {
	return DeleteTemplateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the template deletion command.
func (h *DeleteTemplateCommandHandler) Handle(ctx context.Context, cmd DeleteTemplateCommand) error {
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

	repo := uow.TemplateRepository()
	aggregate, err := repo.Get(ctx, cmd.TemplateID())
	if err != nil {
		return err
	}

	if err = aggregate.CanDelete(); err != nil {
		return err
	}

	if err = repo.Remove(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
