package commands

import (
	"context"
)

// DuplicateTemplateCommandHandler copies an existing template under a new
// identity so it can be adjusted before activation.
type DuplicateTemplateCommandHandler struct {
	uowFactory TemplateUoWFactory
}

// NewDuplicateTemplateCommandHandler creates a handler for template duplication.
func NewDuplicateTemplateCommandHandler(uowFactory TemplateUoWFactory) DuplicateTemplateCommandHandler {
	return DuplicateTemplateCommandHandler{uowFactory: uowFactory}
}

// Handle processes the template duplication command.
func (h *DuplicateTemplateCommandHandler) Handle(ctx context.Context, cmd DuplicateTemplateCommand) error {
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
	source, err := repo.Get(ctx, cmd.SourceID())
	if err != nil {
		return err
	}

	clone, err := source.Duplicate(cmd.CopyID(), cmd.CopyName())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, clone); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
