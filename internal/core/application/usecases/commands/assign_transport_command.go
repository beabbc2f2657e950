package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var (
	ErrAssignTransportCommandIsNotConstructed = errors.New(
		"AssignTransportCommand must be created via NewAssignTransportCommand constructor",
	)
	ErrVehicleIsRequired = errors.New("vehicle id is required")
	ErrDriverIsRequired  = errors.New("driver id is required")
)

// AssignTransportCommand represents a request to attach a vehicle and
// driver to an order, moving it to assigned.
type AssignTransportCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	vehicleID string
	driverID  string
	carrierID string
	actor     string

	guard guard.ConstructorGuard
}

// NewAssignTransportCommand creates a command to assign transport.
// Vehicle and driver are both mandatory; the carrier is optional.
func NewAssignTransportCommand(orderID kernel.UUID, vehicleID, driverID, carrierID, actor string) (AssignTransportCommand, error) {
	cmd := AssignTransportCommand{
		carrierID: carrierID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVehicleID(vehicleID),
		cmd.setDriverID(driverID),
	); err != nil {
		return AssignTransportCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignTransportCommand) Validate() error {
	return c.guard.Validate(ErrAssignTransportCommandIsNotConstructed)
}

func (c AssignTransportCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignTransportCommand) VehicleID() string    { return c.vehicleID }
func (c AssignTransportCommand) DriverID() string     { return c.driverID }
func (c AssignTransportCommand) CarrierID() string    { return c.carrierID }
func (c AssignTransportCommand) Actor() string        { return c.actor }

func (c *AssignTransportCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignTransportCommand) setVehicleID(vehicleID string) error {
	if vehicleID == "" {
		return ErrVehicleIsRequired
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *AssignTransportCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return ErrDriverIsRequired
	}
	c.driverID = driverID
	return nil
}
