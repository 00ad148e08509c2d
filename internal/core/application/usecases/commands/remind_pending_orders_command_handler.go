package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/ports"
)

// RemindPendingOrdersCommandHandler nudges farmers about orders that were
// placed but never accepted. It only reads order state and dispatches
// notifications; no order is mutated, so a failed dispatch simply repeats on
// the next scheduler tick.
type RemindPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewRemindPendingOrdersCommandHandler creates a handler for the pending
// order reminder batch.
func NewRemindPendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) RemindPendingOrdersCommandHandler {
	return RemindPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle retrieves all orders still pending past the command's age threshold
// and dispatches one reminder per order to the responsible farmer.
func (h *RemindPendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd RemindPendingOrdersCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())

	stale, err := uow.OrderRepository().GetAllPendingBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, o := range stale {
		h.dispatcher.Notify(
			ctx,
			o.FarmerID(),
			"Order Awaiting Confirmation",
			fmt.Sprintf("Order %s has been pending since %s. Please accept or cancel it.",
				o.ID().String(), o.CreatedAt().Format(time.RFC3339)),
			ports.NotificationCategoryOrder,
		)
	}

	return nil
}
