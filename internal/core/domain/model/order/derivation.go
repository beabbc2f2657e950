package order

import "math"

// CompletionPercentage computes how much of the route is done: the share
// of milestones that are completed or skipped, rounded to the nearest
// integer percent. An empty plan yields zero.
func CompletionPercentage(milestones []*Milestone) int {
	if len(milestones) == 0 {
		return 0
	}

	finished := 0
	for _, m := range milestones {
		if m.IsFinished() {
			finished++
		}
	}

	return int(math.Round(float64(finished) * 100 / float64(len(milestones))))
}

// DeriveStatus computes the order status implied by its milestone states.
// The function is pure and idempotent: deriving twice over the same input
// yields the same result.
//
// Precedence, highest first:
//  1. every milestone finished            -> completed
//  2. any milestone delayed               -> delayed
//  3. any milestone in progress           -> at_milestone
//  4. otherwise the current status stands
//
// Terminal orders are never re-derived.
func DeriveStatus(current Status, milestones []*Milestone) Status {
	if current.IsTerminal() || len(milestones) == 0 {
		return current
	}

	allFinished := true
	anyDelayed := false
	anyInProgress := false
	for _, m := range milestones {
		switch m.Status() {
		case MilestoneStatusDelayed:
			anyDelayed = true
			allFinished = false
		case MilestoneStatusInProgress:
			anyInProgress = true
			allFinished = false
		case MilestoneStatusPending, MilestoneStatusApproaching:
			allFinished = false
		case MilestoneStatusCompleted, MilestoneStatusSkipped, MilestoneStatusUnknown:
		}
	}

	switch {
	case allFinished:
		return StatusCompleted
	case anyDelayed:
		return StatusDelayed
	case anyInProgress:
		return StatusAtMilestone
	}
	return current
}
