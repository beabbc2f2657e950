package commands

import (
	"context"
	"log/slog"
	"time"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/ports"
	"transtrack/internal/events"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/errs"
	"transtrack/internal/pkg/logging"
)

// RecordMilestonePassageCommandHandler applies milestone events to an
// order: entries, exits, approaches, delays, skips and manual
// registrations. Each
// event rederives the order status; when the status moves, the change is
// announced on the bus.
type RecordMilestonePassageCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRecordMilestonePassageCommandHandler creates a handler for milestone
// passages.
func NewRecordMilestonePassageCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) RecordMilestonePassageCommandHandler {
	return RecordMilestonePassageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logging.WithComponent("milestone_passage"),
	}
}

// Handle processes one milestone passage.
func (h *RecordMilestonePassageCommandHandler) Handle(ctx context.Context, cmd RecordMilestonePassageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Status()
	if err = h.applyPassage(ctx, uow, aggregate, cmd); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if from != aggregate.Status() {
		metrics.IncrementStatusTransition(aggregate.Status().String())
		publishEvent(ctx, h.logger, h.publisher, events.OrderStatusChanged{
			OrderID:    aggregate.ID().String(),
			Number:     aggregate.Number(),
			From:       from.String(),
			To:         aggregate.Status().String(),
			Actor:      cmd.Actor(),
			Reason:     string(cmd.Kind()) + " at milestone",
			Completion: aggregate.CompletionPercent(),
			ChangedAt:  time.Now().UTC(),
		})
	}

	return nil
}

func (h *RecordMilestonePassageCommandHandler) applyPassage(ctx context.Context, uow UoW,
	aggregate *order.Order, cmd RecordMilestonePassageCommand) error {
	switch cmd.Kind() {
	case PassageEntry:
		return aggregate.EnterMilestone(cmd.MilestoneID(), cmd.At())
	case PassageExit:
		return aggregate.ExitMilestone(cmd.MilestoneID(), cmd.At())
	case PassageApproach:
		return aggregate.MarkMilestoneApproaching(cmd.MilestoneID())
	case PassageDelay:
		return aggregate.MarkMilestoneDelayed(cmd.MilestoneID(), cmd.Actor(), "")
	case PassageSkip:
		if !cmd.Force() {
			if err := h.guardRequiredStep(ctx, uow, aggregate, cmd); err != nil {
				return err
			}
		}
		return aggregate.SkipMilestone(cmd.MilestoneID(), cmd.Actor())
	case PassageManual:
		return aggregate.RegisterManualMilestone(cmd.MilestoneID(), cmd.Entry(), cmd.Exit(), cmd.Manual())
	}
	return ErrPassageKindIsInvalid
}

// guardRequiredStep refuses to skip a milestone whose workflow step is
// marked required. The milestone-to-step mapping uses the same count
// approximation as progress tracking: the step at the milestone's position,
// clamped to the last step.
func (h *RecordMilestonePassageCommandHandler) guardRequiredStep(ctx context.Context, uow UoW,
	aggregate *order.Order, cmd RecordMilestonePassageCommand) error {
	if aggregate.WorkflowID() == nil {
		return nil
	}

	m, err := aggregate.FindMilestone(cmd.MilestoneID())
	if err != nil {
		return err
	}

	tpl, err := uow.TemplateRepository().Get(ctx, *aggregate.WorkflowID())
	if err != nil {
		return err
	}

	steps := tpl.Steps()
	idx := m.Sequence() - 1
	if idx > len(steps)-1 {
		idx = len(steps) - 1
	}
	if idx < 0 {
		return nil
	}

	if steps[idx].Required && !steps[idx].Skippable {
		return errs.NewInvalidOperationError("skip milestone",
			"workflow step is required, use force to override")
	}
	return nil
}
