package queries

import (
	"errors"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/guard"
)

var ErrGetTemplatesQueryIsNotConstructed = errors.New(
	"GetTemplatesQuery must be created via NewGetTemplatesQuery constructor",
)

// GetTemplatesQuery retrieves the workflow template catalog, optionally
// restricted to active templates.
type GetTemplatesQuery struct {
	onlyActive bool

	guard guard.ConstructorGuard
}

// NewGetTemplatesQuery creates a query for the template catalog.
func NewGetTemplatesQuery(onlyActive bool) GetTemplatesQuery {
	return GetTemplatesQuery{onlyActive: onlyActive, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTemplatesQuery) Validate() error {
	return q.guard.Validate(ErrGetTemplatesQueryIsNotConstructed)
}

func (q GetTemplatesQuery) OnlyActive() bool { return q.onlyActive }

// GetTemplatesQueryResponse is one row of the template catalog.
type GetTemplatesQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Description string
	Version     int
	StepCount   int
	IsDefault   bool
	IsActive    bool
	CreatedAt   time.Time
}
