package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrRemoveMilestoneCommandIsNotConstructed = errors.New(
	"RemoveMilestoneCommand must be created via NewRemoveMilestoneCommand constructor",
)

// RemoveMilestoneCommand represents a request to drop a checkpoint from an
// order's route plan.
type RemoveMilestoneCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	milestoneID kernel.UUID
	actor       string

	guard guard.ConstructorGuard
}

// NewRemoveMilestoneCommand creates a command to remove a milestone.
func NewRemoveMilestoneCommand(orderID, milestoneID kernel.UUID, actor string) (RemoveMilestoneCommand, error) {
	if err := errors.Join(orderID.Validate(), milestoneID.Validate()); err != nil {
		return RemoveMilestoneCommand{}, err
	}

	return RemoveMilestoneCommand{
		orderID:     orderID,
		milestoneID: milestoneID,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveMilestoneCommand) Validate() error {
	return c.guard.Validate(ErrRemoveMilestoneCommandIsNotConstructed)
}

func (c RemoveMilestoneCommand) OrderID() kernel.UUID     { return c.orderID }
func (c RemoveMilestoneCommand) MilestoneID() kernel.UUID { return c.milestoneID }
func (c RemoveMilestoneCommand) Actor() string            { return c.actor }
