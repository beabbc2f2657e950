package workflow

import (
	"math"
	"time"
)

// Progress is a point-in-time view of where an order sits inside its
// workflow template.
//
// The current step is approximated from the count of completed milestones
// against the count of template steps; transition conditions declared on
// steps are descriptive and not evaluated here.
type Progress struct {
	CurrentStepIndex int
	CurrentStep      Step
	NextStep         *Step

	CompletedSteps int
	TotalSteps     int
	// ProgressPercent is round(100 * CompletedSteps / TotalSteps).
	ProgressPercent int

	// TimeInCurrentStepMinutes counts from the most recent milestone exit;
	// zero when nothing has been exited yet.
	TimeInCurrentStepMinutes int

	// IsDelayed is true when the current step defines a maximum duration
	// and the order has exceeded it.
	IsDelayed bool
}

// ProgressFor computes the order's position inside the template.
// completedMilestones is the number of finished milestones on the order
// and lastExit the most recent recorded milestone exit (nil if none).
func (t *Template) ProgressFor(completedMilestones int, lastExit *time.Time, now time.Time) Progress {
	total := len(t.steps)

	completed := completedMilestones
	if completed > total {
		completed = total
	}

	idx := completedMilestones
	if idx > total-1 {
		idx = total - 1
	}
	if idx < 0 {
		idx = 0
	}

	minutes := 0
	if lastExit != nil && now.After(*lastExit) {
		minutes = int(math.Round(now.Sub(*lastExit).Minutes()))
	}

	current := t.steps[idx]
	delayed := current.MaxDurationMinutes != nil && minutes > *current.MaxDurationMinutes

	var next *Step
	if idx+1 < total {
		n := t.steps[idx+1]
		next = &n
	}

	return Progress{
		CurrentStepIndex:         idx,
		CurrentStep:              current,
		NextStep:                 next,
		CompletedSteps:           completed,
		TotalSteps:               total,
		ProgressPercent:          int(math.Round(float64(completed) * 100 / float64(total))),
		TimeInCurrentStepMinutes: minutes,
		IsDelayed:                delayed,
	}
}
