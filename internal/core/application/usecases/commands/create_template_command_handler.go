package commands

import (
	"context"

	"transtrack/internal/core/domain/model/workflow"
)

// CreateTemplateCommandHandler registers a new workflow template. New
// templates start active and non-default.
type CreateTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewCreateTemplateCommandHandler creates a handler for template creation.
func NewCreateTemplateCommandHandler(uowFactory TemplateUoWFactory) CreateTemplateCommandHandler {
	return CreateTemplateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the template creation command.
func (h *CreateTemplateCommandHandler) Handle(ctx context.Context, cmd CreateTemplateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	def := cmd.Definition()
	aggregate, err := workflow.NewTemplate(cmd.TemplateID(), def.Name, def.Description,
		def.Steps, def.Rules, def.CargoTypes, def.CustomerIDs)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TemplateRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
