package commands

import (
	"errors"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var (
	ErrUpdateMilestoneCommandIsNotConstructed = errors.New(
		"UpdateMilestoneCommand must be created via NewUpdateMilestoneCommand constructor",
	)
	ErrMilestonePatchIsEmpty = errors.New("milestone patch carries no changes")
)

// UpdateMilestoneCommand represents a request to patch a checkpoint's
// estimated window or geofence link. At least one of the two must be
// present; a zero arrival leaves the window untouched, a nil geofence
// leaves the link untouched.
type UpdateMilestoneCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	milestoneID        kernel.UUID
	estimatedArrival   time.Time
	estimatedDeparture time.Time
	geofenceID         *kernel.UUID
	actor              string

	guard guard.ConstructorGuard
}

// NewUpdateMilestoneCommand creates a command to patch a milestone.
func NewUpdateMilestoneCommand(orderID, milestoneID kernel.UUID,
	estimatedArrival, estimatedDeparture time.Time,
	geofenceID *kernel.UUID, actor string) (UpdateMilestoneCommand, error) {
	cmd := UpdateMilestoneCommand{
		estimatedArrival:   estimatedArrival,
		estimatedDeparture: estimatedDeparture,
		geofenceID:         geofenceID,
		actor:              actor,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMilestoneID(milestoneID),
		cmd.validatePatch(),
	); err != nil {
		return UpdateMilestoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMilestoneCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMilestoneCommandIsNotConstructed)
}

func (c UpdateMilestoneCommand) OrderID() kernel.UUID          { return c.orderID }
func (c UpdateMilestoneCommand) MilestoneID() kernel.UUID      { return c.milestoneID }
func (c UpdateMilestoneCommand) EstimatedArrival() time.Time   { return c.estimatedArrival }
func (c UpdateMilestoneCommand) EstimatedDeparture() time.Time { return c.estimatedDeparture }
func (c UpdateMilestoneCommand) GeofenceID() *kernel.UUID      { return c.geofenceID }
func (c UpdateMilestoneCommand) Actor() string                 { return c.actor }

func (c *UpdateMilestoneCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateMilestoneCommand) setMilestoneID(milestoneID kernel.UUID) error {
	if err := milestoneID.Validate(); err != nil {
		return err
	}
	c.milestoneID = milestoneID
	return nil
}

func (c *UpdateMilestoneCommand) validatePatch() error {
	if c.estimatedArrival.IsZero() && c.geofenceID == nil {
		return ErrMilestonePatchIsEmpty
	}
	if c.geofenceID != nil {
		return c.geofenceID.Validate()
	}
	return nil
}
