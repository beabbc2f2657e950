package queries

import (
	"context"

	"transtrack/internal/core/ports"
)

// Escalation queries run domain evaluation over full aggregates, so unlike
// the listing queries they read through the repositories.
type (
	// EscalationUoW provides transactional read access to orders and
	// templates.
	EscalationUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		TemplateRepository() ports.TemplateRepository
	}

	// EscalationUoWFactory creates unit of work instances for escalation
	// evaluation.
	EscalationUoWFactory interface {
		Create() EscalationUoW
	}
)
