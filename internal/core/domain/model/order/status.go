package order

import (
	"transtrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a transport order.
//
// State transitions:
//
//	draft ──> pending ──> assigned ──> in_transit ──> at_milestone ⇄ delayed ──> completed ──> closed
//	  │          │           │
//	  └──────────┴───────────┴──────> cancelled (also from in_transit/at_milestone/delayed)
//
// completed, delayed and at_milestone are derived statuses: they are
// computed from milestone states and are never set freely by callers.
// closed and cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusDraft is the initial status of a freshly created order.
	// Only draft orders may be deleted.
	StatusDraft

	// StatusPending marks an order confirmed for execution but without
	// transport assigned yet.
	StatusPending

	// StatusAssigned indicates a vehicle and driver have been assigned.
	StatusAssigned

	// StatusInTransit indicates the order is moving between checkpoints.
	StatusInTransit

	// StatusAtMilestone is derived: some milestone is currently in progress.
	StatusAtMilestone

	// StatusDelayed is derived: some milestone is currently delayed.
	StatusDelayed

	// StatusCompleted is derived: every milestone is completed or skipped.
	StatusCompleted

	// StatusClosed marks administrative closure. Terminal and irreversible.
	StatusClosed

	// StatusCancelled marks abandonment before completion. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusDraft:       "draft",
		StatusPending:     "pending",
		StatusAssigned:    "assigned",
		StatusInTransit:   "in_transit",
		StatusAtMilestone: "at_milestone",
		StatusDelayed:     "delayed",
		StatusCompleted:   "completed",
		StatusClosed:      "closed",
		StatusCancelled:   "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusDraft:       "draft",
		StatusPending:     "pending",
		StatusAssigned:    "assigned",
		StatusInTransit:   "in_transit",
		StatusAtMilestone: "at_milestone",
		StatusDelayed:     "delayed",
		StatusCompleted:   "completed",
		StatusClosed:      "closed",
		StatusCancelled:   "cancelled",
	}
}

// Validate checks that the Status holds one of the defined values.
// StatusUnknown and anything outside the enum are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsInvalidError(s.String()))
	}
	return nil
}

// String returns the wire name of the status ("draft", "in_transit", ...).
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString maps a wire name back to a Status.
func StatusFromString(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// IsDerived reports whether the status is computed from milestone states
// rather than set directly by callers.
func (s Status) IsDerived() bool {
	return s == StatusCompleted || s == StatusDelayed || s == StatusAtMilestone
}

// CanCancel reports whether an order in this status may still be cancelled:
// any non-terminal state that has not reached completed.
func (s Status) CanCancel() bool {
	switch s {
	case StatusDraft, StatusPending, StatusAssigned, StatusInTransit, StatusAtMilestone, StatusDelayed:
		return true
	case StatusUnknown, StatusCompleted, StatusClosed, StatusCancelled:
		return false
	}
	return false
}

// Assign transitions the status to assigned.
//
// Valid only from draft or pending; the aggregate additionally requires a
// vehicle and driver before invoking this.
func (s Status) Assign() (Status, error) {
	if s != StatusDraft && s != StatusPending {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusAssigned.String())
	}
	return StatusAssigned, nil
}

// Confirm transitions the status from draft to pending.
func (s Status) Confirm() (Status, error) {
	if s != StatusDraft {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusPending.String())
	}
	return StatusPending, nil
}

// StartTransit transitions the status to in_transit. Valid only from assigned.
func (s Status) StartTransit() (Status, error) {
	if s != StatusAssigned {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusInTransit.String())
	}
	return StatusInTransit, nil
}

// Cancel transitions the status to cancelled.
func (s Status) Cancel() (Status, error) {
	if !s.CanCancel() {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusCancelled.String())
	}
	return StatusCancelled, nil
}

// Close transitions the status to closed. Valid only from completed; the
// aggregate additionally verifies every milestone is completed or skipped.
func (s Status) Close() (Status, error) {
	if s != StatusCompleted {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), StatusClosed.String())
	}
	return StatusClosed, nil
}
