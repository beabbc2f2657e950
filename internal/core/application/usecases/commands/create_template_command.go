package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/pkg/guard"
)

var (
	ErrCreateTemplateCommandIsNotConstructed = errors.New(
		"CreateTemplateCommand must be created via NewCreateTemplateCommand constructor",
	)
	ErrTemplateNameIsRequired   = errors.New("template name is required")
	ErrTemplateStepsAreRequired = errors.New("template needs at least one step")
)

// TemplateDefinition is the payload shared by template create and update
// commands.
type TemplateDefinition struct {
	Name        string
	Description string
	Steps       []workflow.Step
	Rules       []workflow.EscalationRule
	CargoTypes  []order.CargoType
	CustomerIDs []string
}

func (d TemplateDefinition) validate() error {
	if d.Name == "" {
		return ErrTemplateNameIsRequired
	}
	if len(d.Steps) == 0 {
		return ErrTemplateStepsAreRequired
	}
	return nil
}

// CreateTemplateCommand represents a request to register a new workflow
// template.
type CreateTemplateCommand struct { //nolint:recvcheck //using for validation
	templateID kernel.UUID
	definition TemplateDefinition

	guard guard.ConstructorGuard
}

// NewCreateTemplateCommand creates a command to register a template.
func NewCreateTemplateCommand(templateID kernel.UUID, definition TemplateDefinition) (CreateTemplateCommand, error) {
	if err := errors.Join(templateID.Validate(), definition.validate()); err != nil {
		return CreateTemplateCommand{}, err
	}

	return CreateTemplateCommand{
		templateID: templateID,
		definition: definition,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTemplateCommand) Validate() error {
	return c.guard.Validate(ErrCreateTemplateCommandIsNotConstructed)
}

func (c CreateTemplateCommand) TemplateID() kernel.UUID        { return c.templateID }
func (c CreateTemplateCommand) Definition() TemplateDefinition { return c.definition }
