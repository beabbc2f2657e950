package workflow

import (
	"transtrack/internal/pkg/errs"
)

// EscalationCondition selects which timing signal a rule watches.
type EscalationCondition string

const (
	// EscalationDelayThreshold fires when the order is delayed in its
	// current step beyond the threshold.
	EscalationDelayThreshold EscalationCondition = "delay_threshold"

	// EscalationNoUpdate fires when the order has not been touched for
	// longer than the threshold, delayed or not.
	EscalationNoUpdate EscalationCondition = "no_update"

	// EscalationStepStuck fires when the order sits in one of the rule's
	// steps beyond the threshold.
	EscalationStepStuck EscalationCondition = "step_stuck"
)

// Validate checks the condition against the closed set.
func (c EscalationCondition) Validate() error {
	switch c {
	case EscalationDelayThreshold, EscalationNoUpdate, EscalationStepStuck:
		return nil
	}
	return errs.NewValueIsInvalidError("escalation condition")
}

// EscalationActionKind is what happens when a rule fires.
type EscalationActionKind string

const (
	EscalationActionNotify EscalationActionKind = "notify"
	EscalationActionFlag   EscalationActionKind = "flag"
)

// EscalationAction is one consequence of a fired rule. Notify actions carry
// a channel and target; flag actions only mark the order for attention.
type EscalationAction struct {
	Kind    EscalationActionKind
	Channel string
	Target  string
}

// EscalationRule is a time-based watch condition attached to a workflow
// template. Rules are evaluated independently of one another.
type EscalationRule struct {
	Name             string
	Condition        EscalationCondition
	ThresholdMinutes int
	// StepSequences restricts step_stuck rules to specific steps,
	// identified by sequence number. Ignored for other conditions.
	StepSequences []int
	Actions       []EscalationAction
	IsActive      bool
}

// Validate checks the rule definition. step_stuck rules must name at least
// one step.
func (r EscalationRule) Validate() error {
	if r.Name == "" {
		return errs.NewValueIsRequiredError("rule name")
	}
	if err := r.Condition.Validate(); err != nil {
		return err
	}
	if r.ThresholdMinutes <= 0 {
		return errs.NewValueIsInvalidError("threshold minutes")
	}
	if r.Condition == EscalationStepStuck && len(r.StepSequences) == 0 {
		return errs.NewValueIsRequiredError("step sequences")
	}
	for _, a := range r.Actions {
		if a.Kind != EscalationActionNotify && a.Kind != EscalationActionFlag {
			return errs.NewValueIsInvalidError("escalation action")
		}
	}
	return nil
}

// WatchesStep reports whether a step_stuck rule covers the given step
// sequence.
func (r EscalationRule) WatchesStep(sequence int) bool {
	for _, s := range r.StepSequences {
		if s == sequence {
			return true
		}
	}
	return false
}
