package order

import (
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

// RestoreMilestoneParams carries every persisted field of a milestone.
type RestoreMilestoneParams struct {
	ID                 kernel.UUID
	Name               string
	Address            string
	Point              *kernel.GeoPoint
	Kind               MilestoneKind
	Sequence           int
	EstimatedArrival   time.Time
	EstimatedDeparture time.Time
	ActualEntry        *time.Time
	ActualExit         *time.Time
	Status             MilestoneStatus
	DelayMinutes       *int
	Manual             *ManualEntry
	GeofenceID         *kernel.UUID
}

// RestoreMilestone reconstructs a milestone from storage without replaying
// its transitions. Intended for repositories only.
func RestoreMilestone(params RestoreMilestoneParams) *Milestone {
	return &Milestone{
		id:                 params.ID,
		name:               params.Name,
		address:            params.Address,
		point:              params.Point,
		kind:               params.Kind,
		sequence:           params.Sequence,
		estimatedArrival:   params.EstimatedArrival,
		estimatedDeparture: params.EstimatedDeparture,
		actualEntry:        params.ActualEntry,
		actualExit:         params.ActualExit,
		status:             params.Status,
		delayMinutes:       params.DelayMinutes,
		manual:             params.Manual,
		geofenceID:         params.GeofenceID,
		guard:              guard.NewConstructorGuard(),
	}
}

// RestoreOrderParams carries every persisted field of an order.
type RestoreOrderParams struct {
	ID             kernel.UUID
	Number         string
	Status         Status
	Priority       Priority
	CustomerID     string
	CustomerName   string
	CarrierID      *string
	VehicleID      *string
	DriverID       *string
	WorkflowID     *kernel.UUID
	WorkflowName   string
	Cargo          Cargo
	Milestones     []*Milestone
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	History        []StatusChange
	Closure        *ClosureRecord
	SyncStatus     SyncStatus
	SyncError      string
	ExternalRef    string
	Notes          string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreOrder reconstructs an order from storage without replaying its
// history. The completion percentage is recomputed from the milestone
// states rather than trusted from the row. Intended for repositories only.
func RestoreOrder(params RestoreOrderParams) *Order {
	return &Order{
		id:             params.ID,
		number:         params.Number,
		status:         params.Status,
		priority:       params.Priority,
		customerID:     params.CustomerID,
		customerName:   params.CustomerName,
		carrierID:      params.CarrierID,
		vehicleID:      params.VehicleID,
		driverID:       params.DriverID,
		workflowID:     params.WorkflowID,
		workflowName:   params.WorkflowName,
		cargo:          params.Cargo,
		milestones:     params.Milestones,
		completion:     CompletionPercentage(params.Milestones),
		scheduledStart: params.ScheduledStart,
		scheduledEnd:   params.ScheduledEnd,
		actualStart:    params.ActualStart,
		actualEnd:      params.ActualEnd,
		history:        params.History,
		closure:        params.Closure,
		syncStatus:     params.SyncStatus,
		syncError:      params.SyncError,
		externalRef:    params.ExternalRef,
		notes:          params.Notes,
		version:        params.Version,
		createdAt:      params.CreatedAt,
		updatedAt:      params.UpdatedAt,
		guard:          guard.NewConstructorGuard(),
	}
}
