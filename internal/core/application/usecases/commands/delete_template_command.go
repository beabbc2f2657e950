package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrDeleteTemplateCommandIsNotConstructed = errors.New(
	"DeleteTemplateCommand must be created via NewDeleteTemplateCommand constructor",
)

// DeleteTemplateCommand represents a request to delete a workflow template.
type DeleteTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteTemplateCommand creates a command to delete a template.
func NewDeleteTemplateCommand(templateID kernel.UUID) (DeleteTemplateCommand, error) {
	if err := templateID.Validate(); err != nil {
		return DeleteTemplateCommand{}, err
	}

	return DeleteTemplateCommand{
		templateID: templateID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteTemplateCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTemplateCommandIsNotConstructed)
}

func (c DeleteTemplateCommand) TemplateID() kernel.UUID { return c.templateID }
