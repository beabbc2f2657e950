package workflow

import (
	"transtrack/internal/pkg/errs"
)

// StepAction is the kind of activity a workflow step represents.
type StepAction string

const (
	StepActionPickup     StepAction = "pickup"
	StepActionTransit    StepAction = "transit"
	StepActionDelivery   StepAction = "delivery"
	StepActionCustoms    StepAction = "customs"
	StepActionInspection StepAction = "inspection"
)

// Validate checks the action against the closed set.
func (a StepAction) Validate() error {
	switch a {
	case StepActionPickup, StepActionTransit, StepActionDelivery,
		StepActionCustoms, StepActionInspection:
		return nil
	}
	return errs.NewValueIsInvalidError("step action")
}

// ConditionKind identifies what advances an order past a step.
type ConditionKind string

const (
	ConditionLocationReached  ConditionKind = "location_reached"
	ConditionManualTrigger    ConditionKind = "manual_trigger"
	ConditionDocumentUploaded ConditionKind = "document_uploaded"
	ConditionTimeElapsed      ConditionKind = "time_elapsed"
)

// Validate checks the condition kind against the closed set.
func (k ConditionKind) Validate() error {
	switch k {
	case ConditionLocationReached, ConditionManualTrigger,
		ConditionDocumentUploaded, ConditionTimeElapsed:
		return nil
	}
	return errs.NewValueIsInvalidError("condition kind")
}

// TransitionCondition declares one way a step can complete. Conditions are
// descriptive template data; progress tracking approximates step advance
// from completed milestone counts rather than evaluating them.
type TransitionCondition struct {
	Kind  ConditionKind
	Value string
}

// NotificationDecl declares who gets told when the step begins or escalates.
type NotificationDecl struct {
	Channel string
	Target  string
}

// Step is one stage in a workflow template: what should happen, how long
// it is expected to take, and when it counts as stuck. Sequence numbers
// are assigned by the owning template and run 1..N.
type Step struct {
	Sequence                 int
	Name                     string
	Action                   StepAction
	Required                 bool
	Skippable                bool
	EstimatedDurationMinutes int
	// MaxDurationMinutes caps the stage before it counts as delayed.
	// nil disables the delay check for this step.
	MaxDurationMinutes *int
	Conditions         []TransitionCondition
	Notifications      []NotificationDecl
}

// Validate checks the step definition.
func (s Step) Validate() error {
	if s.Name == "" {
		return errs.NewValueIsRequiredError("step name")
	}
	if err := s.Action.Validate(); err != nil {
		return err
	}
	if s.EstimatedDurationMinutes <= 0 {
		return errs.NewValueIsInvalidError("estimated duration")
	}
	if s.MaxDurationMinutes != nil && *s.MaxDurationMinutes <= 0 {
		return errs.NewValueIsInvalidError("max duration")
	}
	for _, c := range s.Conditions {
		if err := c.Kind.Validate(); err != nil {
			return err
		}
	}
	return nil
}
