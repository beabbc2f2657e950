package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var (
	ErrInsertMilestoneCommandIsNotConstructed = errors.New(
		"InsertMilestoneCommand must be created via NewInsertMilestoneCommand constructor",
	)
	ErrMilestoneNameIsRequired    = errors.New("milestone name is required")
	ErrMilestoneArrivalIsRequired = errors.New("estimated arrival is required")
)

// InsertMilestoneCommand represents a request to add a checkpoint to an
// order's route plan at a 1-based position. Out-of-range positions are
// clamped to the ends of the plan.
type InsertMilestoneCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	milestone MilestoneInput
	position  int
	actor     string

	guard guard.ConstructorGuard
}

// NewInsertMilestoneCommand creates a command to insert a milestone.
func NewInsertMilestoneCommand(orderID kernel.UUID, milestone MilestoneInput,
	position int, actor string) (InsertMilestoneCommand, error) {
	cmd := InsertMilestoneCommand{
		milestone: milestone,
		position:  position,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		validateMilestoneInput(milestone),
	); err != nil {
		return InsertMilestoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InsertMilestoneCommand) Validate() error {
	return c.guard.Validate(ErrInsertMilestoneCommandIsNotConstructed)
}

func (c InsertMilestoneCommand) OrderID() kernel.UUID      { return c.orderID }
func (c InsertMilestoneCommand) Milestone() MilestoneInput { return c.milestone }
func (c InsertMilestoneCommand) Position() int             { return c.position }
func (c InsertMilestoneCommand) Actor() string             { return c.actor }

func (c *InsertMilestoneCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func validateMilestoneInput(input MilestoneInput) error {
	if input.Name == "" {
		return ErrMilestoneNameIsRequired
	}
	if input.EstimatedArrival.IsZero() {
		return ErrMilestoneArrivalIsRequired
	}
	if input.Point != nil {
		return input.Point.Validate()
	}
	return nil
}
