package commands

import (
	"context"
)

// DeactivateTemplateCommandHandler deactivates a template. The default
// template cannot be deactivated, it has to be demoted first.
type DeactivateTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewDeactivateTemplateCommandHandler creates a handler for template deactivation.
func NewDeactivateTemplateCommandHandler(uowFactory TemplateUoWFactory) DeactivateTemplateCommandHandler {
	return DeactivateTemplateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the template deactivation command.
func (h *DeactivateTemplateCommandHandler) Handle(ctx context.Context, cmd DeactivateTemplateCommand) error {
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

	if err = aggregate.Deactivate(); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
