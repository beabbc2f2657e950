// Package queries contains read operations that do not modify system
// state. Listing queries read the database directly with raw SQL,
// bypassing the aggregate layer; escalation queries load aggregates
// through the repositories because they run domain evaluation.
package queries

import (
	"errors"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full tracking view of one order: header,
// transport assignment, sync state and the milestone plan.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// MilestoneView is one checkpoint row of the order detail view.
type MilestoneView struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Address            string     `json:"address"`
	Kind               string     `json:"kind"`
	Sequence           int        `json:"sequence"`
	Status             string     `json:"status"`
	EstimatedArrival   time.Time  `json:"estimated_arrival"`
	EstimatedDeparture *time.Time `json:"estimated_departure,omitempty"`
	ActualEntry        *time.Time `json:"actual_entry,omitempty"`
	ActualExit         *time.Time `json:"actual_exit,omitempty"`
	DelayMinutes       *int       `json:"delay_minutes,omitempty"`
}

// GetOrderQueryResponse is the full order detail view.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	Number         string
	Status         string
	Priority       string
	CustomerID     string
	CustomerName   string
	VehicleID      *string
	DriverID       *string
	WorkflowName   string
	Completion     int
	SyncStatus     string
	SyncError      string
	ScheduledStart time.Time
	ScheduledEnd   *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	Milestones     []MilestoneView
	Notes          string
}
