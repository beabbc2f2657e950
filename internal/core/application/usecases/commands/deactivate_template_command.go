package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrDeactivateTemplateCommandIsNotConstructed = errors.New(
	"DeactivateTemplateCommand must be created via NewDeactivateTemplateCommand constructor",
)

// DeactivateTemplateCommand represents a request to deactivate a template
// so it stops matching new orders.
type DeactivateTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateTemplateCommand creates a command to deactivate a template.
func NewDeactivateTemplateCommand(templateID kernel.UUID) (DeactivateTemplateCommand, error) {
	if err := templateID.Validate(); err != nil {
		return DeactivateTemplateCommand{}, err
	}

	return DeactivateTemplateCommand{
		templateID: templateID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateTemplateCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateTemplateCommandIsNotConstructed)
}

func (c DeactivateTemplateCommand) TemplateID() kernel.UUID { return c.templateID }
