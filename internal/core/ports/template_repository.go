package ports

import (
	"context"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/workflow"
)

// TemplateRepository defines the persistence contract for workflow
// template aggregates.
type TemplateRepository interface {
	// Add persists a new template.
	Add(ctx context.Context, aggregate *workflow.Template) error

	// Update persists changes to an existing template.
	Update(ctx context.Context, aggregate *workflow.Template) error

	// Get retrieves a template by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*workflow.Template, error)

	// GetAll retrieves every template in creation order. Selection relies
	// on that ordering being stable.
	GetAll(ctx context.Context) ([]*workflow.Template, error)

	// GetDefault retrieves the current default template, if any.
	GetDefault(ctx context.Context) (*workflow.Template, error)

	// Remove deletes a template. Deletion rules (never the default, only
	// inactive templates) are enforced by the caller.
	Remove(ctx context.Context, id kernel.UUID) error
}
