package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrActivateTemplateCommandIsNotConstructed = errors.New(
	"ActivateTemplateCommand must be created via NewActivateTemplateCommand constructor",
)

// ActivateTemplateCommand represents a request to activate a template,
// optionally promoting it to the default.
type ActivateTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID
	asDefault  bool

	guard guard.ConstructorGuard
}

// NewActivateTemplateCommand creates a command to activate a template.
func NewActivateTemplateCommand(templateID kernel.UUID, asDefault bool) (ActivateTemplateCommand, error) {
	if err := templateID.Validate(); err != nil {
		return ActivateTemplateCommand{}, err
	}

	return ActivateTemplateCommand{
		templateID: templateID,
		asDefault:  asDefault,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ActivateTemplateCommand) Validate() error {
	return c.guard.Validate(ErrActivateTemplateCommandIsNotConstructed)
}

func (c ActivateTemplateCommand) TemplateID() kernel.UUID { return c.templateID }
func (c ActivateTemplateCommand) AsDefault() bool         { return c.asDefault }
