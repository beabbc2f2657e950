package commands

import (
	"errors"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired      = errors.New("customer id is required")
	ErrScheduleStartIsRequired = errors.New("scheduled start is required")
	ErrScheduleIsInverted      = errors.New("scheduled end precedes scheduled start")
	ErrTooFewMilestones        = errors.New("at least an origin and a destination milestone are required")
)

// MilestoneInput is one checkpoint of the requested route plan.
type MilestoneInput struct {
	Name               string
	Address            string
	Point              *kernel.GeoPoint
	EstimatedArrival   time.Time
	EstimatedDeparture time.Time
}

// CreateOrderCommand represents a request to register a new transport
// order with its route plan. When WorkflowID is left nil the handler
// resolves a workflow template from the order attributes.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     string
	customerName   string
	cargo          order.Cargo
	priority       order.Priority
	workflowID     *kernel.UUID
	scheduledStart time.Time
	scheduledEnd   time.Time
	milestones     []MilestoneInput
	externalRef    string
	notes          string
	createdBy      string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a transport order.
// Validates identifiers, cargo, priority, schedule and the minimum route
// size. Returns an error joining every validation failure.
func NewCreateOrderCommand(orderID kernel.UUID, customerID, customerName string,
	cargo order.Cargo, priority order.Priority, workflowID *kernel.UUID,
	scheduledStart, scheduledEnd time.Time, milestones []MilestoneInput,
	externalRef, notes, createdBy string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName: customerName,
		externalRef:  externalRef,
		notes:        notes,
		createdBy:    createdBy,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setCargo(cargo),
		cmd.setPriority(priority),
		cmd.setWorkflowID(workflowID),
		cmd.setSchedule(scheduledStart, scheduledEnd),
		cmd.setMilestones(milestones),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateOrderCommand) CustomerID() string          { return c.customerID }
func (c CreateOrderCommand) CustomerName() string        { return c.customerName }
func (c CreateOrderCommand) Cargo() order.Cargo          { return c.cargo }
func (c CreateOrderCommand) Priority() order.Priority    { return c.priority }
func (c CreateOrderCommand) WorkflowID() *kernel.UUID    { return c.workflowID }
func (c CreateOrderCommand) ScheduledStart() time.Time   { return c.scheduledStart }
func (c CreateOrderCommand) ScheduledEnd() time.Time     { return c.scheduledEnd }
func (c CreateOrderCommand) Milestones() []MilestoneInput { return c.milestones }
func (c CreateOrderCommand) ExternalRef() string         { return c.externalRef }
func (c CreateOrderCommand) Notes() string               { return c.notes }
func (c CreateOrderCommand) CreatedBy() string           { return c.createdBy }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIsRequired
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCargo(cargo order.Cargo) error {
	if err := cargo.Validate(); err != nil {
		return err
	}
	c.cargo = cargo
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setWorkflowID(workflowID *kernel.UUID) error {
	if workflowID != nil {
		if err := workflowID.Validate(); err != nil {
			return err
		}
	}
	c.workflowID = workflowID
	return nil
}

func (c *CreateOrderCommand) setSchedule(start, end time.Time) error {
	if start.IsZero() {
		return ErrScheduleStartIsRequired
	}
	if !end.IsZero() && end.Before(start) {
		return ErrScheduleIsInverted
	}
	c.scheduledStart = start
	c.scheduledEnd = end
	return nil
}

func (c *CreateOrderCommand) setMilestones(milestones []MilestoneInput) error {
	if len(milestones) < order.MinMilestones {
		return ErrTooFewMilestones
	}
	c.milestones = milestones
	return nil
}
