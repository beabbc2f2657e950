package queries

import (
	"errors"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order that has not reached a
// terminal status, for the operations board.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the active order listing.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one row of the active order listing.
type GetActiveOrdersQueryResponse struct {
	ID             kernel.UUID
	Number         string
	Status         string
	Priority       string
	CustomerName   string
	Completion     int
	SyncStatus     string
	ScheduledStart time.Time
	ScheduledEnd   *time.Time
}
