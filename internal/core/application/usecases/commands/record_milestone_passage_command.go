package commands

import (
	"errors"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/pkg/guard"
)

var (
	ErrRecordMilestonePassageCommandIsNotConstructed = errors.New(
		"RecordMilestonePassageCommand must be created via NewRecordMilestonePassageCommand constructor",
	)
	ErrPassageKindIsInvalid   = errors.New("passage kind is invalid")
	ErrPassageTimeIsRequired  = errors.New("passage time is required")
	ErrManualEntryIsIncomplete = errors.New("manual passage needs operator, reason and at least one timestamp")
)

// PassageKind selects what happened at the checkpoint.
type PassageKind string

const (
	// PassageEntry records an automatic checkpoint entry.
	PassageEntry PassageKind = "entry"
	// PassageExit records an automatic checkpoint exit.
	PassageExit PassageKind = "exit"
	// PassageApproach flags the vehicle as near the checkpoint.
	PassageApproach PassageKind = "approach"
	// PassageDelay flags the checkpoint as behind schedule.
	PassageDelay PassageKind = "delay"
	// PassageSkip drops the checkpoint from the active route.
	PassageSkip PassageKind = "skip"
	// PassageManual registers an operator-entered passage with audit
	// metadata.
	PassageManual PassageKind = "manual"
)

// RecordMilestonePassageCommand represents one milestone event against an
// order: automatic entry/exit, approach, delay, skip, or a manual
// registration.
type RecordMilestonePassageCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	milestoneID kernel.UUID
	kind        PassageKind

	// at is the event time for automatic entry/exit.
	at time.Time

	// manual passage payload.
	entry  *time.Time
	exit   *time.Time
	manual order.ManualEntry

	// force overrides the required-step guard when skipping.
	force bool
	actor string

	guard guard.ConstructorGuard
}

// NewRecordMilestonePassageCommand creates an automatic passage command
// (entry, exit, approach, delay or skip).
func NewRecordMilestonePassageCommand(orderID, milestoneID kernel.UUID, kind PassageKind,
	at time.Time, force bool, actor string) (RecordMilestonePassageCommand, error) {
	cmd := RecordMilestonePassageCommand{
		kind:  kind,
		at:    at,
		force: force,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMilestoneID(milestoneID),
		cmd.validateAutomatic(kind, at),
	); err != nil {
		return RecordMilestonePassageCommand{}, err
	}

	return cmd, nil
}

// NewManualMilestonePassageCommand creates a manual passage command. At
// least one of entry/exit must be present; the operator identity and a
// reason from the closed set are mandatory.
func NewManualMilestonePassageCommand(orderID, milestoneID kernel.UUID,
	entry, exit *time.Time, manual order.ManualEntry) (RecordMilestonePassageCommand, error) {
	cmd := RecordMilestonePassageCommand{
		kind:   PassageManual,
		entry:  entry,
		exit:   exit,
		manual: manual,
		actor:  manual.RegisteredBy,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMilestoneID(milestoneID),
		cmd.validateManual(entry, exit, manual),
	); err != nil {
		return RecordMilestonePassageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c RecordMilestonePassageCommand) Validate() error {
	return c.guard.Validate(ErrRecordMilestonePassageCommandIsNotConstructed)
}

func (c RecordMilestonePassageCommand) OrderID() kernel.UUID      { return c.orderID }
func (c RecordMilestonePassageCommand) MilestoneID() kernel.UUID  { return c.milestoneID }
func (c RecordMilestonePassageCommand) Kind() PassageKind         { return c.kind }
func (c RecordMilestonePassageCommand) At() time.Time             { return c.at }
func (c RecordMilestonePassageCommand) Entry() *time.Time         { return c.entry }
func (c RecordMilestonePassageCommand) Exit() *time.Time          { return c.exit }
func (c RecordMilestonePassageCommand) Manual() order.ManualEntry { return c.manual }
func (c RecordMilestonePassageCommand) Force() bool               { return c.force }
func (c RecordMilestonePassageCommand) Actor() string             { return c.actor }

func (c *RecordMilestonePassageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordMilestonePassageCommand) setMilestoneID(milestoneID kernel.UUID) error {
	if err := milestoneID.Validate(); err != nil {
		return err
	}
	c.milestoneID = milestoneID
	return nil
}

func (c *RecordMilestonePassageCommand) validateAutomatic(kind PassageKind, at time.Time) error {
	switch kind {
	case PassageEntry, PassageExit:
		if at.IsZero() {
			return ErrPassageTimeIsRequired
		}
	case PassageApproach, PassageDelay, PassageSkip:
	case PassageManual:
		return ErrPassageKindIsInvalid
	default:
		return ErrPassageKindIsInvalid
	}
	return nil
}

func (c *RecordMilestonePassageCommand) validateManual(entry, exit *time.Time, manual order.ManualEntry) error {
	if entry == nil && exit == nil {
		return ErrManualEntryIsIncomplete
	}
	if manual.RegisteredBy == "" {
		return ErrManualEntryIsIncomplete
	}
	if err := manual.Reason.Validate(); err != nil {
		return err
	}
	return nil
}
