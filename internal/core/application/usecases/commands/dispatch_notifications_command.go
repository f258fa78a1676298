package commands

import (
	"errors"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand triggers one pump of the notification outbox:
// undispatched entries are pushed through the SMS channel and marked with
// their outcome. Run periodically by the dispatch job.
type DispatchNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a command to pump the outbox.
// batchSize bounds how many entries one pump processes.
func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize <= 0 {
		return DispatchNotificationsCommand{}, errs.NewValueIsInvalidError("batch size")
	}

	return DispatchNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of entries processed per pump.
func (c DispatchNotificationsCommand) BatchSize() int {
	return c.batchSize
}
