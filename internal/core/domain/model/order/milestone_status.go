package order

import (
	"transtrack/internal/pkg/errs"
)

// MilestoneStatus represents the state of a single checkpoint within an
// order's route.
//
// State transitions:
//
//	pending ──> approaching ──> in_progress ──> completed
//	   │             │               │
//	   │             └──> delayed <──┘   (delayed may still complete via exit)
//	   └──> skipped
//
// completed and skipped are terminal.
type MilestoneStatus int

const (
	// MilestoneStatusUnknown represents an invalid or undefined status.
	MilestoneStatusUnknown MilestoneStatus = iota

	// MilestoneStatusPending means the vehicle has not reached the
	// checkpoint yet.
	MilestoneStatusPending

	// MilestoneStatusApproaching means the vehicle is near the checkpoint
	// but no entry has been recorded.
	MilestoneStatusApproaching

	// MilestoneStatusInProgress means an entry has been recorded and the
	// vehicle is inside the checkpoint area.
	MilestoneStatusInProgress

	// MilestoneStatusCompleted means an exit has been recorded. Terminal.
	MilestoneStatusCompleted

	// MilestoneStatusDelayed means the checkpoint exceeded its expected
	// schedule. The milestone may still complete afterwards.
	MilestoneStatusDelayed

	// MilestoneStatusSkipped means the checkpoint was deliberately left
	// out of the route. Terminal, counts as finished for completion.
	MilestoneStatusSkipped
)

func getMilestoneStatusStrings() map[MilestoneStatus]string {
	return map[MilestoneStatus]string{
		MilestoneStatusUnknown:     "unknown",
		MilestoneStatusPending:     "pending",
		MilestoneStatusApproaching: "approaching",
		MilestoneStatusInProgress:  "in_progress",
		MilestoneStatusCompleted:   "completed",
		MilestoneStatusDelayed:     "delayed",
		MilestoneStatusSkipped:     "skipped",
	}
}

func getValidMilestoneStatusStrings() map[MilestoneStatus]string {
	//nolint:exhaustive // MilestoneStatusUnknown is intentionally excluded as it's invalid
	return map[MilestoneStatus]string{
		MilestoneStatusPending:     "pending",
		MilestoneStatusApproaching: "approaching",
		MilestoneStatusInProgress:  "in_progress",
		MilestoneStatusCompleted:   "completed",
		MilestoneStatusDelayed:     "delayed",
		MilestoneStatusSkipped:     "skipped",
	}
}

// Validate checks that the MilestoneStatus holds one of the defined values.
func (s MilestoneStatus) Validate() error {
	if _, ok := getValidMilestoneStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("milestone status",
			errs.NewValueIsInvalidError(s.String()))
	}
	return nil
}

// String returns the wire name of the status. Safe on any value.
func (s MilestoneStatus) String() string {
	if str, ok := getMilestoneStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MilestoneStatusFromString maps a wire name back to a MilestoneStatus.
func MilestoneStatusFromString(raw string) (MilestoneStatus, error) {
	for status, str := range getValidMilestoneStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return MilestoneStatusUnknown, errs.NewValueIsInvalidError("milestone status")
}

// IsFinished reports whether the milestone counts toward completion:
// completed or skipped.
func (s MilestoneStatus) IsFinished() bool {
	return s == MilestoneStatusCompleted || s == MilestoneStatusSkipped
}

// Enter transitions the status to in_progress on a recorded entry.
// Valid from pending, approaching or delayed.
func (s MilestoneStatus) Enter() (MilestoneStatus, error) {
	switch s {
	case MilestoneStatusPending, MilestoneStatusApproaching, MilestoneStatusDelayed:
		return MilestoneStatusInProgress, nil
	case MilestoneStatusUnknown, MilestoneStatusInProgress, MilestoneStatusCompleted, MilestoneStatusSkipped:
		return MilestoneStatusUnknown, errs.NewInvalidTransitionError(s.String(), MilestoneStatusInProgress.String())
	}
	return MilestoneStatusUnknown, errs.NewInvalidTransitionError(s.String(), MilestoneStatusInProgress.String())
}

// Exit transitions the status to completed on a recorded exit. Valid from
// in_progress, or from delayed when the delay happened inside the checkpoint.
func (s MilestoneStatus) Exit() (MilestoneStatus, error) {
	if s != MilestoneStatusInProgress && s != MilestoneStatusDelayed {
		return MilestoneStatusUnknown, errs.NewInvalidTransitionError(s.String(), MilestoneStatusCompleted.String())
	}
	return MilestoneStatusCompleted, nil
}

// Approach transitions the status to approaching. Valid only from pending.
func (s MilestoneStatus) Approach() (MilestoneStatus, error) {
	if s != MilestoneStatusPending {
		return MilestoneStatusUnknown, errs.NewInvalidTransitionError(s.String(), MilestoneStatusApproaching.String())
	}
	return MilestoneStatusApproaching, nil
}

// Delay transitions the status to delayed. Valid from approaching or
// in_progress.
func (s MilestoneStatus) Delay() (MilestoneStatus, error) {
	if s != MilestoneStatusApproaching && s != MilestoneStatusInProgress {
		return MilestoneStatusUnknown, errs.NewInvalidTransitionError(s.String(), MilestoneStatusDelayed.String())
	}
	return MilestoneStatusDelayed, nil
}

// Skip transitions the status to skipped. Valid only from pending: a
// checkpoint already reached cannot be skipped.
func (s MilestoneStatus) Skip() (MilestoneStatus, error) {
	if s != MilestoneStatusPending {
		return MilestoneStatusUnknown, errs.NewInvalidTransitionError(s.String(), MilestoneStatusSkipped.String())
	}
	return MilestoneStatusSkipped, nil
}
