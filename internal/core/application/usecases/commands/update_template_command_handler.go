package commands

import (
	"context"
)

// UpdateTemplateCommandHandler replaces a template definition in place.
type UpdateTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewUpdateTemplateCommandHandler creates a handler for template updates.
func NewUpdateTemplateCommandHandler(uowFactory TemplateUoWFactory) UpdateTemplateCommandHandler {
	return UpdateTemplateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the template update command.
func (h *UpdateTemplateCommandHandler) Handle(ctx context.Context, cmd UpdateTemplateCommand) error {
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

	def := cmd.Definition()
	if err = aggregate.Update(def.Name, def.Description, def.Steps,
		def.Rules, def.CargoTypes, def.CustomerIDs); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
