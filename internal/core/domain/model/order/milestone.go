package order

import (
	"math"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/errs"
	"transtrack/internal/pkg/guard"
)

// MilestoneKind distinguishes the role of a checkpoint within the route.
type MilestoneKind string

const (
	MilestoneKindOrigin      MilestoneKind = "origin"
	MilestoneKindWaypoint    MilestoneKind = "waypoint"
	MilestoneKindDestination MilestoneKind = "destination"
)

// ManualReason is the closed set of justifications accepted when a
// milestone passage is registered by hand instead of by a position event.
type ManualReason string

const (
	ManualReasonNoGPSSignal      ManualReason = "no_gps_signal"
	ManualReasonEquipmentFailure ManualReason = "equipment_failure"
	ManualReasonRetroactiveLoad  ManualReason = "retroactive_load"
	ManualReasonCorrection       ManualReason = "correction"
	ManualReasonOther            ManualReason = "other"
)

// Validate checks the reason against the closed set.
func (r ManualReason) Validate() error {
	switch r {
	case ManualReasonNoGPSSignal, ManualReasonEquipmentFailure,
		ManualReasonRetroactiveLoad, ManualReasonCorrection, ManualReasonOther:
		return nil
	}
	return errs.NewValueIsInvalidError("manual reason")
}

// ManualEntry records who registered a manual passage and why.
type ManualEntry struct {
	Reason       ManualReason
	RegisteredBy string
	RegisteredAt time.Time
	Comment      string
}

// Milestone is an entity owned by the Order aggregate: one geographic
// checkpoint the transport must pass through. Milestones are ordered by
// sequence; the first is the origin, the last the destination, everything
// between a waypoint. Sequence and kind are managed by the aggregate and
// renumbered whenever the plan changes.
type Milestone struct {
	id       kernel.UUID
	name     string
	address  string
	point    *kernel.GeoPoint
	kind     MilestoneKind
	sequence int

	estimatedArrival   time.Time
	estimatedDeparture time.Time
	actualEntry        *time.Time
	actualExit         *time.Time

	status       MilestoneStatus
	delayMinutes *int
	manual       *ManualEntry
	geofenceID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewMilestone creates a pending milestone for the given checkpoint.
// The point may be nil when coordinates are not yet resolved. Sequence and
// kind are assigned by the owning order.
func NewMilestone(id kernel.UUID, name, address string, point *kernel.GeoPoint,
	estimatedArrival, estimatedDeparture time.Time) (*Milestone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return nil, err
		}
	}
	if estimatedArrival.IsZero() {
		return nil, errs.NewValueIsRequiredError("estimatedArrival")
	}
	if !estimatedDeparture.IsZero() && estimatedDeparture.Before(estimatedArrival) {
		return nil, errs.NewValueIsInvalidError("estimatedDeparture")
	}

	return &Milestone{
		id:                 id,
		name:               name,
		address:            address,
		point:              point,
		kind:               MilestoneKindWaypoint,
		estimatedArrival:   estimatedArrival,
		estimatedDeparture: estimatedDeparture,
		status:             MilestoneStatusPending,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (m *Milestone) ID() kernel.UUID              { return m.id }
func (m *Milestone) Name() string                 { return m.name }
func (m *Milestone) Address() string              { return m.address }
func (m *Milestone) Point() *kernel.GeoPoint      { return m.point }
func (m *Milestone) Kind() MilestoneKind          { return m.kind }
func (m *Milestone) Sequence() int                { return m.sequence }
func (m *Milestone) EstimatedArrival() time.Time  { return m.estimatedArrival }
func (m *Milestone) EstimatedDeparture() time.Time { return m.estimatedDeparture }
func (m *Milestone) ActualEntry() *time.Time      { return m.actualEntry }
func (m *Milestone) ActualExit() *time.Time       { return m.actualExit }
func (m *Milestone) Status() MilestoneStatus      { return m.status }
func (m *Milestone) Manual() *ManualEntry         { return m.manual }
func (m *Milestone) GeofenceID() *kernel.UUID     { return m.geofenceID }

// DelayMinutes returns how late the entry was relative to the estimated
// arrival, or nil when no entry has been recorded. Negative values mean
// an early arrival.
func (m *Milestone) DelayMinutes() *int { return m.delayMinutes }

// IsFinished reports whether the milestone counts toward order completion.
func (m *Milestone) IsFinished() bool { return m.status.IsFinished() }

// Validate checks the milestone was created through its constructor.
func (m *Milestone) Validate() error {
	return m.guard.Validate(errs.NewValueIsRequiredError("Milestone must be created via NewMilestone"))
}

// Enter records the vehicle entering the checkpoint at the given time and
// moves the milestone to in_progress. The entry delay against the estimated
// arrival is captured in minutes.
func (m *Milestone) Enter(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("entry time")
	}

	status, err := m.status.Enter()
	if err != nil {
		return err
	}

	m.status = status
	m.actualEntry = &at
	delay := int(math.Round(at.Sub(m.estimatedArrival).Minutes()))
	m.delayMinutes = &delay
	return nil
}

// Exit records the vehicle leaving the checkpoint and completes the
// milestone. An exit requires a prior entry and may not precede it.
func (m *Milestone) Exit(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("exit time")
	}
	if m.actualEntry == nil {
		return errs.NewInvalidOperationError("exit milestone", "no entry recorded")
	}
	if at.Before(*m.actualEntry) {
		return errs.NewValueIsInvalidError("exit time")
	}

	status, err := m.status.Exit()
	if err != nil {
		return err
	}

	m.status = status
	m.actualExit = &at
	return nil
}

// RegisterManualPassage records a passage entered by an operator instead of
// a position event. Providing only an entry moves the milestone to
// in_progress; providing an exit as well completes it in one step. The
// same transition rules apply as for automatic events.
func (m *Milestone) RegisterManualPassage(entry, exit *time.Time, manual ManualEntry) error {
	if err := manual.Reason.Validate(); err != nil {
		return err
	}
	if manual.RegisteredBy == "" {
		return errs.NewValueIsRequiredError("registeredBy")
	}
	if entry == nil && exit == nil {
		return errs.NewValueIsRequiredError("entry or exit time")
	}

	if entry != nil {
		if err := m.Enter(*entry); err != nil {
			return err
		}
	}
	if exit != nil {
		if err := m.Exit(*exit); err != nil {
			return err
		}
	}

	m.manual = &manual
	return nil
}

// MarkApproaching flags the vehicle as near the checkpoint.
func (m *Milestone) MarkApproaching() error {
	status, err := m.status.Approach()
	if err != nil {
		return err
	}
	m.status = status
	return nil
}

// MarkDelayed flags the milestone as behind schedule.
func (m *Milestone) MarkDelayed() error {
	status, err := m.status.Delay()
	if err != nil {
		return err
	}
	m.status = status
	return nil
}

// Skip removes the checkpoint from the active route without deleting it.
// A skipped milestone counts as finished for completion purposes.
func (m *Milestone) Skip() error {
	status, err := m.status.Skip()
	if err != nil {
		return err
	}
	m.status = status
	return nil
}

// Reschedule replaces the estimated window. Only allowed before the
// milestone is finished.
func (m *Milestone) Reschedule(estimatedArrival, estimatedDeparture time.Time) error {
	if m.status.IsFinished() {
		return errs.NewInvalidOperationError("reschedule milestone", "milestone already finished")
	}
	if estimatedArrival.IsZero() {
		return errs.NewValueIsRequiredError("estimatedArrival")
	}
	if !estimatedDeparture.IsZero() && estimatedDeparture.Before(estimatedArrival) {
		return errs.NewValueIsInvalidError("estimatedDeparture")
	}

	m.estimatedArrival = estimatedArrival
	m.estimatedDeparture = estimatedDeparture
	return nil
}

// AttachGeofence links the milestone to the geofence that produced its
// position events.
func (m *Milestone) AttachGeofence(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.geofenceID = &id
	return nil
}

// applySequence is called by the owning order when the plan is renumbered.
func (m *Milestone) applySequence(sequence int, kind MilestoneKind) {
	m.sequence = sequence
	m.kind = kind
}
