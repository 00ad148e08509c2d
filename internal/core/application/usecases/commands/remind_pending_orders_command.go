package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// RemindPendingOrdersCommand triggers reminder notifications for orders that
// have been sitting in PENDING status longer than the configured grace period.
//
// Example:
//
//	cmd, err := NewRemindPendingOrdersCommand(30 * time.Minute)
//	if err != nil {
//	    return err
//	}
//	handler := NewRemindPendingOrdersCommandHandler(uowFactory, dispatcher)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Pending order reminders failed: %v", err)
//	}
type RemindPendingOrdersCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

var (
	ErrRemindPendingOrdersCommandIsNotConstructed = errors.New(
		"RemindPendingOrdersCommand must be created via NewRemindPendingOrdersCommand constructor",
	)
)

// NewRemindPendingOrdersCommand creates a command to remind farmers about
// stale pending orders. The olderThan duration must be positive.
func NewRemindPendingOrdersCommand(olderThan time.Duration) (RemindPendingOrdersCommand, error) {
	if olderThan <= 0 {
		return RemindPendingOrdersCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	command := RemindPendingOrdersCommand{
		olderThan: olderThan,

		guard: guard.NewConstructorGuard(),
	}

	return command, nil
}

// OlderThan returns the minimum age a pending order must reach before a
// reminder is sent.
func (c *RemindPendingOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemindPendingOrdersCommandIsNotConstructed if validation fails.
func (c *RemindPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingOrdersCommandIsNotConstructed)
}
