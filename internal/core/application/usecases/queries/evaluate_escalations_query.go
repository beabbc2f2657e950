package queries

import (
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrEvaluateEscalationsQueryIsNotConstructed = errors.New(
	"EvaluateEscalationsQuery must be created via NewEvaluateEscalationsQuery constructor",
)

// EvaluateEscalationsQuery checks one order against the escalation rules
// of its workflow template.
type EvaluateEscalationsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEvaluateEscalationsQuery creates an escalation check for one order.
func NewEvaluateEscalationsQuery(orderID kernel.UUID) (EvaluateEscalationsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return EvaluateEscalationsQuery{}, err
	}
	return EvaluateEscalationsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q EvaluateEscalationsQuery) Validate() error {
	return q.guard.Validate(ErrEvaluateEscalationsQueryIsNotConstructed)
}

func (q EvaluateEscalationsQuery) OrderID() kernel.UUID { return q.orderID }
