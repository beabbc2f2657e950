package commands

import (
	"context"
	"errors"

	"transtrack/internal/pkg/errs"
)

// ActivateTemplateCommandHandler activates a template. When the command
// asks for default promotion the previous default is demoted in the same
// transaction, so there is never more than one default template.
type ActivateTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewActivateTemplateCommandHandler creates a handler for template activation.
func NewActivateTemplateCommandHandler(uowFactory TemplateUoWFactory) ActivateTemplateCommandHandler {
	return ActivateTemplateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the template activation command.
func (h *ActivateTemplateCommandHandler) Handle(ctx context.Context, cmd ActivateTemplateCommand) error {
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

	aggregate.Activate()

	if cmd.AsDefault() {
		previous, err := repo.GetDefault(ctx)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		if previous != nil && previous.ID() != aggregate.ID() {
			previous.UnmarkDefault()
			if err = repo.Update(ctx, previous); err != nil {
				return err
			}
		}
		if err = aggregate.MarkDefault(); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
