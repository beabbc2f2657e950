package queries

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/services"
	"transtrack/internal/pkg/guard"
)

var ErrEscalationSweepQueryIsNotConstructed = errors.New(
	"EscalationSweepQuery must be created via NewEscalationSweepQuery constructor",
)

// EscalationSweepQuery checks every active order against its escalation
// rules. The periodic scan job runs this and announces whatever triggered.
type EscalationSweepQuery struct {
	guard guard.ConstructorGuard
}

// NewEscalationSweepQuery creates a sweep over all active orders.
func NewEscalationSweepQuery() EscalationSweepQuery {
	return EscalationSweepQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q EscalationSweepQuery) Validate() error {
	return q.guard.Validate(ErrEscalationSweepQueryIsNotConstructed)
}

// OrderEscalations pairs one order with its rule evaluation outcome.
// Results contains one entry per active rule, triggered or not.
type OrderEscalations struct {
	OrderID     kernel.UUID
	OrderNumber string
	Results     []services.EscalationResult
}

// Triggered returns only the results that actually fired.
func (e OrderEscalations) Triggered() []services.EscalationResult {
	fired := make([]services.EscalationResult, 0)
	for _, r := range e.Results {
		if r.Triggered {
			fired = append(fired, r)
		}
	}
	return fired
}
