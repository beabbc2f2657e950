package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var (
	ErrCloseOrderCommandIsNotConstructed = errors.New(
		"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
	)
	ErrClosedByIsRequired = errors.New("closedBy is required")
)

// CloseOrderCommand represents a request for administrative closure of a
// completed order: final observations, incidents and deviation reasons for
// the record.
type CloseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	observations     string
	incidents        []string
	deviationReasons []string
	closedBy         string

	guard guard.ConstructorGuard
}

// NewCloseOrderCommand creates a command to close an order.
func NewCloseOrderCommand(orderID kernel.UUID, observations string,
	incidents, deviationReasons []string, closedBy string) (CloseOrderCommand, error) {
	cmd := CloseOrderCommand{
		observations:     observations,
		incidents:        incidents,
		deviationReasons: deviationReasons,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClosedBy(closedBy),
	); err != nil {
		return CloseOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

func (c CloseOrderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c CloseOrderCommand) Observations() string       { return c.observations }
func (c CloseOrderCommand) Incidents() []string        { return c.incidents }
func (c CloseOrderCommand) DeviationReasons() []string { return c.deviationReasons }
func (c CloseOrderCommand) ClosedBy() string           { return c.closedBy }

func (c *CloseOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CloseOrderCommand) setClosedBy(closedBy string) error {
	if closedBy == "" {
		return ErrClosedByIsRequired
	}
	c.closedBy = closedBy
	return nil
}
