package queries

import (
	"context"
	"time"

	"transtrack/internal/core/domain/services"
)

// EvaluateEscalationsQueryHandler loads one order with its template and
// runs the escalation rules. Orders without a bound workflow have nothing
// to evaluate and yield an empty result.
type EvaluateEscalationsQueryHandler struct {
	uowFactory EscalationUoWFactory
	evaluator  services.EscalationEvaluator
}

// NewEvaluateEscalationsQueryHandler creates a handler for single-order
// escalation checks.
func NewEvaluateEscalationsQueryHandler(uowFactory EscalationUoWFactory) EvaluateEscalationsQueryHandler {
	return EvaluateEscalationsQueryHandler{
		uowFactory: uowFactory,
		evaluator:  services.NewEscalationEvaluator(),
	}
}

// Handle executes the escalation check.
func (h EvaluateEscalationsQueryHandler) Handle(
	ctx context.Context,
	query EvaluateEscalationsQuery,
) ([]services.EscalationResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if aggregate.WorkflowID() == nil {
		return []services.EscalationResult{}, uow.Commit(ctx)
	}

	tpl, err := uow.TemplateRepository().Get(ctx, *aggregate.WorkflowID())
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return h.evaluator.Evaluate(aggregate, tpl, time.Now().UTC()), nil
}
