package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/core/domain/services"
	"transtrack/internal/core/ports"
	"transtrack/internal/events"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/logging"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// route plan construction, workflow template resolution and initial
// persistence. The new order starts in draft and is queued for external
// sync.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	selector   services.TemplateSelector
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory spanning orders and templates; the publisher may
// be nil in tests.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		selector:   services.NewTemplateSelector(),
		publisher:  publisher,
		logger:     logging.WithComponent("create_order"),
	}
}

// Handle processes the order creation command. Template selection falls
// back to the default template and tolerates having no match at all; an
// explicitly requested template must exist.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	milestones := make([]*order.Milestone, 0, len(cmd.Milestones()))
	for _, input := range cmd.Milestones() {
		m, err := order.NewMilestone(kernel.NewUUID(), input.Name, input.Address,
			input.Point, input.EstimatedArrival, input.EstimatedDeparture)
		if err != nil {
			return err
		}
		milestones = append(milestones, m)
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(cmd.OrderID(), order.NewOrderNumber(now),
		cmd.CustomerID(), cmd.CustomerName(), cmd.Cargo(), cmd.Priority(),
		cmd.ScheduledStart(), cmd.ScheduledEnd(), milestones, cmd.CreatedBy())
	if err != nil {
		return err
	}
	if cmd.ExternalRef() != "" {
		aggregate.SetExternalRef(cmd.ExternalRef())
	}
	if cmd.Notes() != "" {
		aggregate.SetNotes(cmd.Notes())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tpl, err := h.resolveTemplate(ctx, uow, cmd)
	if err != nil {
		return err
	}
	if tpl != nil {
		if err = aggregate.BindWorkflow(tpl.ID(), tpl.Name()); err != nil {
			return err
		}
	}

	aggregate.MarkSyncPending()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.IncrementOrdersCreated(aggregate.Priority().String())

	event := events.OrderCreated{
		OrderID:    aggregate.ID().String(),
		Number:     aggregate.Number(),
		CustomerID: aggregate.CustomerID(),
		Priority:   aggregate.Priority().String(),
		Milestones: len(aggregate.Milestones()),
		CreatedAt:  aggregate.CreatedAt(),
	}
	if tpl != nil {
		event.WorkflowID = tpl.ID().String()
	}
	publishEvent(ctx, h.logger, h.publisher, event)

	return nil
}

// resolveTemplate returns the explicitly requested template, or the best
// match for the order attributes. Having no applicable template is not an
// error; the order simply runs without a workflow.
func (h *CreateOrderCommandHandler) resolveTemplate(ctx context.Context, uow UoW,
	cmd CreateOrderCommand) (*workflow.Template, error) {
	repo := uow.TemplateRepository()

	if cmd.WorkflowID() != nil {
		return repo.Get(ctx, *cmd.WorkflowID())
	}

	candidates, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	tpl, err := h.selector.Select(candidates, cmd.Cargo().Type, cmd.CustomerID())
	if errors.Is(err, services.ErrNoTemplateMatches) {
		h.logger.Debug("no workflow template matches, order runs without one",
			"customer", cmd.CustomerID(), "cargo_type", cmd.Cargo().Type.String())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tpl, nil
}
