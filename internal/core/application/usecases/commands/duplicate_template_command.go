package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrDuplicateTemplateCommandIsNotConstructed = errors.New(
	"DuplicateTemplateCommand must be created via NewDuplicateTemplateCommand constructor",
)

// DuplicateTemplateCommand represents a request to copy a template under
// a new name. The copy starts inactive at version 1.
type DuplicateTemplateCommand struct { //nolint:recvcheck //using for validation
	sourceID kernel.UUID
	copyID   kernel.UUID
	copyName string

	guard guard.ConstructorGuard
}

// NewDuplicateTemplateCommand creates a command to duplicate a template.
func NewDuplicateTemplateCommand(sourceID, copyID kernel.UUID, copyName string) (DuplicateTemplateCommand, error) {
	err := errors.Join(sourceID.Validate(), copyID.Validate())
	if copyName == "" {
		err = errors.Join(err, ErrTemplateNameIsRequired)
	}
	if err != nil {
		return DuplicateTemplateCommand{}, err
	}

	return DuplicateTemplateCommand{
		sourceID: sourceID,
		copyID:   copyID,
		copyName: copyName,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DuplicateTemplateCommand) Validate() error {
	return c.guard.Validate(ErrDuplicateTemplateCommandIsNotConstructed)
}

func (c DuplicateTemplateCommand) SourceID() kernel.UUID { return c.sourceID }
func (c DuplicateTemplateCommand) CopyID() kernel.UUID   { return c.copyID }
func (c DuplicateTemplateCommand) CopyName() string      { return c.copyName }
