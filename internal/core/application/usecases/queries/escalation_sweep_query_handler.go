package queries

import (
	"context"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/core/domain/services"
)

// EscalationSweepQueryHandler evaluates escalation rules for every active
// order with a bound workflow. Templates are fetched once per sweep, not
// once per order.
type EscalationSweepQueryHandler struct {
	uowFactory EscalationUoWFactory
	evaluator  services.EscalationEvaluator
}

// NewEscalationSweepQueryHandler creates a handler for the escalation
// sweep.
func NewEscalationSweepQueryHandler(uowFactory EscalationUoWFactory) EscalationSweepQueryHandler {
	return EscalationSweepQueryHandler{
		uowFactory: uowFactory,
		evaluator:  services.NewEscalationEvaluator(),
	}
}

// Handle executes the sweep. Only orders whose rules produced at least one
// result appear in the output.
func (h EscalationSweepQueryHandler) Handle(
	ctx context.Context,
	query EscalationSweepQuery,
) ([]OrderEscalations, error) {
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

	active, err := uow.OrderRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	templates := make(map[kernel.UUID]*workflow.Template)
	sweep := make([]OrderEscalations, 0)

	for _, aggregate := range active {
		workflowID := aggregate.WorkflowID()
		if workflowID == nil {
			continue
		}

		tpl, ok := templates[*workflowID]
		if !ok {
			tpl, err = uow.TemplateRepository().Get(ctx, *workflowID)
			if err != nil {
				return nil, err
			}
			templates[*workflowID] = tpl
		}

		results := h.evaluator.Evaluate(aggregate, tpl, now)
		if len(results) == 0 {
			continue
		}
		sweep = append(sweep, OrderEscalations{
			OrderID:     aggregate.ID(),
			OrderNumber: aggregate.Number(),
			Results:     results,
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sweep, nil
}
