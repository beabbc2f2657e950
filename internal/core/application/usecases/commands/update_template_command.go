package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrUpdateTemplateCommandIsNotConstructed = errors.New(
	"UpdateTemplateCommand must be created via NewUpdateTemplateCommand constructor",
)

// UpdateTemplateCommand represents a request to replace a template
// definition, bumping its version.
type UpdateTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID
	definition TemplateDefinition

	guard guard.ConstructorGuard
}

// NewUpdateTemplateCommand creates a command to update a template.
func NewUpdateTemplateCommand(templateID kernel.UUID, definition TemplateDefinition) (UpdateTemplateCommand, error) {
	if err := errors.Join(templateID.Validate(), definition.validate()); err != nil {
		return UpdateTemplateCommand{}, err
	}

	return UpdateTemplateCommand{
		templateID: templateID,
		definition: definition,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTemplateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTemplateCommandIsNotConstructed)
}

func (c UpdateTemplateCommand) TemplateID() kernel.UUID        { return c.templateID }
func (c UpdateTemplateCommand) Definition() TemplateDefinition { return c.definition }
