package services

import (
	"fmt"
	"math"
	"time"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
)

// EscalationResult is the outcome of evaluating one rule against one order.
// Triggered rules carry a message reporting the observed and threshold
// values; callers (notification dispatch, UI badges) decide what to do
// with it.
type EscalationResult struct {
	RuleName  string
	Condition workflow.EscalationCondition
	Triggered bool
	Message   string
}

// EscalationEvaluator is a domain service that checks an order against the
// escalation rules of its workflow template.
//
// Evaluation is a pure function of (order snapshot, template, now): it has
// no side effects, rules are evaluated independently of one another, and
// calling it twice with the same inputs yields identical results. It is
// safe to run concurrently with order mutations; it simply reflects
// whichever snapshot it was handed.
type EscalationEvaluator struct{}

// NewEscalationEvaluator creates a new EscalationEvaluator instance.
func NewEscalationEvaluator() EscalationEvaluator {
	return EscalationEvaluator{}
}

// Evaluate runs every active rule of the template against the order at the
// given instant. The result list preserves rule order and contains one
// entry per active rule, triggered or not.
func (e EscalationEvaluator) Evaluate(o *order.Order, tpl *workflow.Template, now time.Time) []EscalationResult {
	progress := tpl.ProgressFor(o.FinishedMilestoneCount(), o.LastMilestoneExit(), now)

	rules := tpl.ActiveRules()
	results := make([]EscalationResult, 0, len(rules))
	for _, rule := range rules {
		results = append(results, e.evaluateRule(rule, o, progress, now))
	}
	return results
}

func (e EscalationEvaluator) evaluateRule(rule workflow.EscalationRule, o *order.Order,
	progress workflow.Progress, now time.Time) EscalationResult {
	result := EscalationResult{
		RuleName:  rule.Name,
		Condition: rule.Condition,
	}

	switch rule.Condition {
	case workflow.EscalationDelayThreshold:
		if progress.IsDelayed && progress.TimeInCurrentStepMinutes > rule.ThresholdMinutes {
			result.Triggered = true
			result.Message = fmt.Sprintf("order %s delayed: %d minutes in step %q exceeds threshold of %d minutes",
				o.Number(), progress.TimeInCurrentStepMinutes, progress.CurrentStep.Name, rule.ThresholdMinutes)
		}

	case workflow.EscalationNoUpdate:
		idle := int(math.Round(now.Sub(o.UpdatedAt()).Minutes()))
		if idle > rule.ThresholdMinutes {
			result.Triggered = true
			result.Message = fmt.Sprintf("order %s silent: no update for %d minutes, threshold is %d minutes",
				o.Number(), idle, rule.ThresholdMinutes)
		}

	case workflow.EscalationStepStuck:
		if rule.WatchesStep(progress.CurrentStep.Sequence) &&
			progress.TimeInCurrentStepMinutes > rule.ThresholdMinutes {
			result.Triggered = true
			result.Message = fmt.Sprintf("order %s stuck: %d minutes in step %q exceeds threshold of %d minutes",
				o.Number(), progress.TimeInCurrentStepMinutes, progress.CurrentStep.Name, rule.ThresholdMinutes)
		}
	}

	return result
}
