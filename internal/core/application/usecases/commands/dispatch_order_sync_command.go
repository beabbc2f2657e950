package commands

import (
	"errors"

	"transtrack/internal/pkg/guard"
)

var (
	ErrDispatchOrderSyncCommandIsNotConstructed = errors.New(
		"DispatchOrderSyncCommand must be created via NewDispatchOrderSyncCommand constructor",
	)
	ErrSyncLimitIsInvalid = errors.New("sync limit must be greater than 0")
)

// DispatchOrderSyncCommand represents one run of the external sync
// dispatcher: push up to limit queued orders to the planning system.
type DispatchOrderSyncCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewDispatchOrderSyncCommand creates a dispatch command.
func NewDispatchOrderSyncCommand(limit int) (DispatchOrderSyncCommand, error) {
	if limit <= 0 {
		return DispatchOrderSyncCommand{}, ErrSyncLimitIsInvalid
	}

	return DispatchOrderSyncCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderSyncCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderSyncCommandIsNotConstructed)
}

func (c DispatchOrderSyncCommand) Limit() int { return c.limit }
