package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// SettleOrderCommandHandler marks a DELIVERED order as COMPLETED and
// triggers the payment-receipt notification to the farmer. The disbursed
// share is 90% of the order total; the remaining 10% is the implicit
// platform fee. No real money moves: settlement is a status flag and a
// notification.
type SettleOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	policy      services.TransitionPolicy
	statusCache ports.OrderStatusCache
	dispatcher  ports.NotificationDispatcher
}

// NewSettleOrderCommandHandler creates a handler for order settlement.
// statusCache may be nil; settlement then skips the read-cache write-through.
func NewSettleOrderCommandHandler(
	uowFactory OrderUoWFactory,
	statusCache ports.OrderStatusCache,
	dispatcher ports.NotificationDispatcher,
) SettleOrderCommandHandler {
	return SettleOrderCommandHandler{
		uowFactory:  uowFactory,
		policy:      services.NewTransitionPolicy(),
		statusCache: statusCache,
		dispatcher:  dispatcher,
	}
}

// Handle processes the settlement command and returns the completed order.
// Settlement of an undelivered order is refused with an error unwrapping to
// order.ErrInvalidTransition.
func (h *SettleOrderCommandHandler) Handle(ctx context.Context, cmd SettleOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.AuthorizeSettlement(cmd.Actor()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err := o.Settle(); err != nil {
		return nil, err
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.statusCache != nil {
		h.statusCache.Set(ctx, o.ID(), o.Status())
	}

	h.dispatcher.Notify(ctx, o.FarmerID(),
		"Payment Released",
		fmt.Sprintf("Your share of %s for order #%s has been disbursed to your wallet",
			o.FarmerShare(), o.ID()),
		ports.NotificationCategoryPayment,
	)

	return o, nil
}
