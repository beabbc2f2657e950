package order

import (
	"fmt"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/errs"
	"transtrack/internal/pkg/guard"
)

// MinMilestones is the smallest valid route: an origin and a destination.
const MinMilestones = 2

// Order is the aggregate root of the tracking domain: a transport job
// moving through an ordered plan of geographic milestones. The order status
// is partly derived from milestone states (see DeriveStatus); callers never
// set the derived statuses directly, they record milestone passages and the
// aggregate recomputes itself.
type Order struct {
	id       kernel.UUID
	number   string
	status   Status
	priority Priority

	customerID   string
	customerName string
	carrierID    *string
	vehicleID    *string
	driverID     *string

	workflowID   *kernel.UUID
	workflowName string

	cargo      Cargo
	milestones []*Milestone
	completion int

	scheduledStart time.Time
	scheduledEnd   time.Time
	actualStart    *time.Time
	actualEnd      *time.Time

	history []StatusChange
	closure *ClosureRecord

	syncStatus SyncStatus
	syncError  string

	externalRef string
	notes       string

	version   int
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a draft order with the given route plan. The plan must
// contain at least an origin and a destination; milestones are renumbered
// so sequences run 1..N with the first as origin and the last as
// destination. One history entry records the creation.
func NewOrder(id kernel.UUID, number, customerID, customerName string, cargo Cargo,
	priority Priority, scheduledStart, scheduledEnd time.Time,
	milestones []*Milestone, createdBy string) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerID")
	}
	if err := cargo.Validate(); err != nil {
		return nil, err
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}
	if scheduledStart.IsZero() {
		return nil, errs.NewValueIsRequiredError("scheduledStart")
	}
	if !scheduledEnd.IsZero() && scheduledEnd.Before(scheduledStart) {
		return nil, errs.NewValueIsInvalidError("scheduledEnd")
	}
	if len(milestones) < MinMilestones {
		return nil, errs.NewValueIsInvalidErrorWithCause("milestones",
			fmt.Errorf("route needs at least %d milestones, got %d", MinMilestones, len(milestones)))
	}
	for _, m := range milestones {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	if createdBy == "" {
		createdBy = "system"
	}

	now := time.Now().UTC()
	o := &Order{
		id:             id,
		number:         number,
		status:         StatusDraft,
		priority:       priority,
		customerID:     customerID,
		customerName:   customerName,
		cargo:          cargo,
		milestones:     milestones,
		scheduledStart: scheduledStart,
		scheduledEnd:   scheduledEnd,
		syncStatus:     SyncStatusNotSent,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
		guard:          guard.NewConstructorGuard(),
	}
	o.resequence()
	o.history = append(o.history, StatusChange{
		From:   StatusDraft,
		To:     StatusDraft,
		At:     now,
		Actor:  createdBy,
		Reason: "order created",
	})
	return o, nil
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) Number() string             { return o.number }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Priority() Priority         { return o.priority }
func (o *Order) CustomerID() string         { return o.customerID }
func (o *Order) CustomerName() string       { return o.customerName }
func (o *Order) CarrierID() *string         { return o.carrierID }
func (o *Order) VehicleID() *string         { return o.vehicleID }
func (o *Order) DriverID() *string          { return o.driverID }
func (o *Order) WorkflowID() *kernel.UUID   { return o.workflowID }
func (o *Order) WorkflowName() string       { return o.workflowName }
func (o *Order) Cargo() Cargo               { return o.cargo }
func (o *Order) Milestones() []*Milestone   { return o.milestones }
func (o *Order) ScheduledStart() time.Time  { return o.scheduledStart }
func (o *Order) ScheduledEnd() time.Time    { return o.scheduledEnd }
func (o *Order) ActualStart() *time.Time    { return o.actualStart }
func (o *Order) ActualEnd() *time.Time      { return o.actualEnd }
func (o *Order) History() []StatusChange    { return o.history }
func (o *Order) Closure() *ClosureRecord    { return o.closure }
func (o *Order) SyncStatus() SyncStatus     { return o.syncStatus }
func (o *Order) SyncError() string          { return o.syncError }
func (o *Order) ExternalRef() string        { return o.externalRef }
func (o *Order) Notes() string              { return o.notes }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// Version is the persisted revision of the aggregate, used for
// optimistic concurrency control on writes.
func (o *Order) Version() int { return o.version }

// CompletionPercent returns the cached share of finished milestones,
// 0 to 100.
func (o *Order) CompletionPercent() int { return o.completion }

// Validate checks the order was created through a constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(errs.NewValueIsRequiredError("Order must be created via NewOrder"))
}

// CanDelete reports whether the order may be removed outright. Only drafts
// qualify; anything further along must be cancelled instead.
func (o *Order) CanDelete() bool { return o.status == StatusDraft }

// FinishedMilestoneCount returns how many milestones are completed or
// skipped.
func (o *Order) FinishedMilestoneCount() int {
	n := 0
	for _, m := range o.milestones {
		if m.IsFinished() {
			n++
		}
	}
	return n
}

// LastMilestoneExit returns the most recent recorded exit, or nil when no
// milestone has been exited yet.
func (o *Order) LastMilestoneExit() *time.Time {
	var last *time.Time
	for _, m := range o.milestones {
		if m.ActualExit() != nil && (last == nil || m.ActualExit().After(*last)) {
			last = m.ActualExit()
		}
	}
	return last
}

// FindMilestone returns the milestone with the given ID.
func (o *Order) FindMilestone(id kernel.UUID) (*Milestone, error) {
	for _, m := range o.milestones {
		if m.ID().IsEqual(id) {
			return m, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("milestoneID", id.String())
}

// BindWorkflow attaches the workflow template governing this order. Allowed
// only while the order is a draft or pending.
func (o *Order) BindWorkflow(workflowID kernel.UUID, workflowName string) error {
	if err := workflowID.Validate(); err != nil {
		return err
	}
	if o.status != StatusDraft && o.status != StatusPending {
		return errs.NewInvalidOperationError("bind workflow", "order already in execution")
	}
	o.workflowID = &workflowID
	o.workflowName = workflowName
	o.touch()
	return nil
}

// SetCarrier records the carrier operating this order.
func (o *Order) SetCarrier(carrierID string) error {
	if carrierID == "" {
		return errs.NewValueIsRequiredError("carrierID")
	}
	o.carrierID = &carrierID
	o.touch()
	return nil
}

// SetExternalRef records the customer's own reference for the order.
func (o *Order) SetExternalRef(ref string) {
	o.externalRef = ref
	o.touch()
}

// SetNotes replaces the free-form notes.
func (o *Order) SetNotes(notes string) {
	o.notes = notes
	o.touch()
}

// Assign attaches a vehicle and driver and moves the order to assigned.
// Both identifiers are required; assignment is only valid from draft or
// pending.
func (o *Order) Assign(vehicleID, driverID, actor string) error {
	if vehicleID == "" || driverID == "" {
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), StatusAssigned.String(),
			errs.NewValueIsRequiredError("vehicleID and driverID"))
	}

	status, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.vehicleID = &vehicleID
	o.driverID = &driverID
	o.applyStatus(status, actor, "vehicle and driver assigned")
	return nil
}

// ChangeStatus applies a caller-requested transition. A reason is
// mandatory. Derived statuses (completed, delayed, at_milestone) can only
// be requested when the milestone states already support them; closed is
// never reachable here, closure goes through Close.
func (o *Order) ChangeStatus(to Status, actor, reason string) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if to == o.status {
		return nil
	}

	switch to {
	case StatusPending:
		status, err := o.status.Confirm()
		if err != nil {
			return err
		}
		o.applyStatus(status, actor, reason)

	case StatusAssigned:
		if o.vehicleID == nil || o.driverID == nil {
			return errs.NewInvalidTransitionErrorWithCause(o.status.String(), to.String(),
				errs.NewValueIsRequiredError("vehicleID and driverID"))
		}
		status, err := o.status.Assign()
		if err != nil {
			return err
		}
		o.applyStatus(status, actor, reason)

	case StatusInTransit:
		status, err := o.status.StartTransit()
		if err != nil {
			return err
		}
		if o.actualStart == nil {
			now := time.Now().UTC()
			o.actualStart = &now
		}
		o.applyStatus(status, actor, reason)

	case StatusCancelled:
		status, err := o.status.Cancel()
		if err != nil {
			return err
		}
		o.applyStatus(status, actor, reason)

	case StatusCompleted, StatusDelayed, StatusAtMilestone:
		if DeriveStatus(o.status, o.milestones) != to {
			return errs.NewInvalidTransitionErrorWithCause(o.status.String(), to.String(),
				fmt.Errorf("milestone states do not support %s", to))
		}
		o.applyStatus(to, actor, reason)

	case StatusUnknown, StatusDraft, StatusClosed:
		return errs.NewInvalidTransitionError(o.status.String(), to.String())
	}

	return nil
}

// Cancel abandons the order with the given reason.
func (o *Order) Cancel(actor, reason string) error {
	return o.ChangeStatus(StatusCancelled, actor, reason)
}

// Close performs administrative closure of a completed order. Every
// milestone must be completed or skipped; otherwise the error names how
// many are still pending.
func (o *Order) Close(record ClosureRecord) error {
	if pending := len(o.milestones) - o.FinishedMilestoneCount(); pending > 0 {
		return errs.NewCannotCloseError(fmt.Sprintf("%d milestone(s) pending", pending))
	}

	status, err := o.status.Close()
	if err != nil {
		return err
	}
	if record.ClosedBy == "" {
		return errs.NewValueIsRequiredError("closedBy")
	}
	if record.ClosedAt.IsZero() {
		record.ClosedAt = time.Now().UTC()
	}

	o.closure = &record
	if o.actualEnd == nil {
		o.actualEnd = &record.ClosedAt
	}
	o.applyStatus(status, record.ClosedBy, "order closed")
	return nil
}

// EnterMilestone records a checkpoint entry and rederives the order status.
func (o *Order) EnterMilestone(milestoneID kernel.UUID, at time.Time) error {
	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if err := m.Enter(at); err != nil {
		return err
	}
	o.refreshDerivedState("system", fmt.Sprintf("entered milestone %q", m.Name()))
	return nil
}

// ExitMilestone records a checkpoint exit and rederives the order status.
func (o *Order) ExitMilestone(milestoneID kernel.UUID, at time.Time) error {
	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if err := m.Exit(at); err != nil {
		return err
	}
	o.refreshDerivedState("system", fmt.Sprintf("exited milestone %q", m.Name()))
	return nil
}

// RegisterManualMilestone records an operator-entered passage and rederives
// the order status.
func (o *Order) RegisterManualMilestone(milestoneID kernel.UUID, entry, exit *time.Time, manual ManualEntry) error {
	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if err := m.RegisterManualPassage(entry, exit, manual); err != nil {
		return err
	}
	o.refreshDerivedState(manual.RegisteredBy, fmt.Sprintf("manual passage at milestone %q", m.Name()))
	return nil
}

// SkipMilestone drops a pending checkpoint from the active route and
// rederives the order status.
func (o *Order) SkipMilestone(milestoneID kernel.UUID, actor string) error {
	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if err := m.Skip(); err != nil {
		return err
	}
	o.refreshDerivedState(actor, fmt.Sprintf("skipped milestone %q", m.Name()))
	return nil
}

// MarkMilestoneApproaching flags the vehicle as near a checkpoint.
func (o *Order) MarkMilestoneApproaching(milestoneID kernel.UUID) error {
	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if err := m.MarkApproaching(); err != nil {
		return err
	}
	o.touch()
	return nil
}

// MarkMilestoneDelayed flags a checkpoint as behind schedule and rederives
// the order status.
func (o *Order) MarkMilestoneDelayed(milestoneID kernel.UUID, actor, reason string) error {
	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if err := m.MarkDelayed(); err != nil {
		return err
	}
	if reason == "" {
		reason = fmt.Sprintf("milestone %q delayed", m.Name())
	}
	o.refreshDerivedState(actor, reason)
	return nil
}

// AddMilestone inserts a checkpoint at the given 1-based position; values
// out of range are clamped to the ends. The plan is renumbered and the
// order status rederived, since adding work can undo completion.
func (o *Order) AddMilestone(m *Milestone, position int, actor string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidOperationError("add milestone", "order is terminal")
	}
	if _, err := o.FindMilestone(m.ID()); err == nil {
		return errs.NewInvalidOperationError("add milestone", "milestone already present")
	}

	if position < 1 {
		position = 1
	}
	if position > len(o.milestones)+1 {
		position = len(o.milestones) + 1
	}

	idx := position - 1
	o.milestones = append(o.milestones, nil)
	copy(o.milestones[idx+1:], o.milestones[idx:])
	o.milestones[idx] = m

	o.resequence()
	o.refreshDerivedState(actor, fmt.Sprintf("milestone %q added", m.Name()))
	return nil
}

// RemoveMilestone deletes a checkpoint from the plan. The route must keep
// at least an origin and a destination, and checkpoints already reached
// cannot be removed. The plan is renumbered and the status rederived.
func (o *Order) RemoveMilestone(milestoneID kernel.UUID, actor string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidOperationError("remove milestone", "order is terminal")
	}
	if len(o.milestones) <= MinMilestones {
		return errs.NewInvalidOperationError("remove milestone",
			fmt.Sprintf("route must keep at least %d milestones", MinMilestones))
	}

	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}
	if m.Status() == MilestoneStatusInProgress || m.IsFinished() {
		return errs.NewInvalidOperationError("remove milestone", "milestone already reached")
	}

	kept := o.milestones[:0]
	for _, existing := range o.milestones {
		if !existing.ID().IsEqual(milestoneID) {
			kept = append(kept, existing)
		}
	}
	o.milestones = kept

	o.resequence()
	o.refreshDerivedState(actor, fmt.Sprintf("milestone %q removed", m.Name()))
	return nil
}

// MilestonePatch carries the editable planning fields of a checkpoint. A
// zero EstimatedArrival leaves the estimated window untouched; a nil
// GeofenceID leaves the geofence link untouched.
type MilestonePatch struct {
	EstimatedArrival   time.Time
	EstimatedDeparture time.Time
	GeofenceID         *kernel.UUID
}

// UpdateMilestone patches a checkpoint's estimated window and geofence
// link. Rescheduling a finished milestone is rejected by the entity; the
// order status is rederived afterwards.
func (o *Order) UpdateMilestone(milestoneID kernel.UUID, patch MilestonePatch, actor string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidOperationError("update milestone", "order is terminal")
	}

	m, err := o.FindMilestone(milestoneID)
	if err != nil {
		return err
	}

	if !patch.EstimatedArrival.IsZero() {
		if err := m.Reschedule(patch.EstimatedArrival, patch.EstimatedDeparture); err != nil {
			return err
		}
	}
	if patch.GeofenceID != nil {
		if err := m.AttachGeofence(*patch.GeofenceID); err != nil {
			return err
		}
	}

	o.refreshDerivedState(actor, fmt.Sprintf("milestone %q updated", m.Name()))
	return nil
}

// MarkSyncPending queues the order for dispatch to the external planning
// system.
func (o *Order) MarkSyncPending() {
	o.syncStatus = SyncStatusPending
	o.syncError = ""
	o.touch()
}

// MarkSyncSending flags a dispatch attempt in flight.
func (o *Order) MarkSyncSending() {
	o.syncStatus = SyncStatusSending
	o.touch()
}

// MarkSyncSent records a successful dispatch.
func (o *Order) MarkSyncSent() {
	o.syncStatus = SyncStatusSent
	o.syncError = ""
	o.touch()
}

// MarkSyncFailed records a failed dispatch. The failure is kept on the
// order for later retry; it never fails the operation that triggered it.
func (o *Order) MarkSyncFailed(message string, willRetry bool) {
	if willRetry {
		o.syncStatus = SyncStatusRetry
	} else {
		o.syncStatus = SyncStatusFailed
	}
	o.syncError = message
	o.touch()
}

func (o *Order) applyStatus(to Status, actor, reason string) {
	from := o.status
	o.status = to
	o.history = append(o.history, StatusChange{
		From:   from,
		To:     to,
		At:     time.Now().UTC(),
		Actor:  actor,
		Reason: reason,
	})
	o.updatedAt = time.Now().UTC()
}

// refreshDerivedState recomputes the completion percentage and rederives
// the order status from milestone states, recording a history entry when
// the status moved.
func (o *Order) refreshDerivedState(actor, reason string) {
	o.completion = CompletionPercentage(o.milestones)

	derived := DeriveStatus(o.status, o.milestones)
	if derived != o.status {
		if actor == "" {
			actor = "system"
		}
		o.applyStatus(derived, actor, reason)
		return
	}
	o.touch()
}

// resequence renumbers milestones 1..N and reassigns kinds: first is
// origin, last is destination, the rest waypoints.
func (o *Order) resequence() {
	last := len(o.milestones) - 1
	for i, m := range o.milestones {
		kind := MilestoneKindWaypoint
		switch i {
		case 0:
			kind = MilestoneKindOrigin
		case last:
			kind = MilestoneKindDestination
		}
		m.applySequence(i+1, kind)
	}
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}
