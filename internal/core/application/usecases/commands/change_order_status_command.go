package commands

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// ChangeOrderStatusCommand represents a caller-requested status change.
// Every change carries the requesting actor and a mandatory reason for the
// audit history.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   string
	reason  string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order status.
func NewChangeOrderStatusCommand(orderID kernel.UUID, target order.Status, actor, reason string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setReason(reason),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
func (c ChangeOrderStatusCommand) Actor() string        { return c.actor }
func (c ChangeOrderStatusCommand) Reason() string       { return c.reason }

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	c.reason = reason
	return nil
}
