package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// UpdateOrderStatusCommandHandler drives the order lifecycle state machine.
//
// Intermediate milestones are set directly; only two transitions carry a
// guard: the operator path into OUT_FOR_DELIVERY regenerates the delivery
// PIN, and DELIVERED requires the stored PIN to be presented. Transitions
// fail closed: an invalid PIN or unrecognized status leaves the order exactly
// as it was.
//
// After a successful commit the new status is written to the read cache and,
// when a fresh PIN was generated, communicated to the buyer. Both are
// best-effort side effects.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	policy      services.TransitionPolicy
	statusCache ports.OrderStatusCache
	dispatcher  ports.NotificationDispatcher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	statusCache ports.OrderStatusCache,
	dispatcher ports.NotificationDispatcher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		policy:      services.NewTransitionPolicy(),
		statusCache: statusCache,
		dispatcher:  dispatcher,
	}
}

// Handle processes the transition command and returns the updated order.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	target, err := order.StatusFromString(cmd.NewStatus())
	if err != nil {
		return nil, err
	}

	if err := h.policy.AuthorizeTransition(cmd.Actor(), target); err != nil {
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

	if cmd.PickupAddress() != "" {
		o.SetPickupAddress(cmd.PickupAddress())
	}

	var freshPin *order.DeliveryPin

	switch {
	case target.IsMilestone():
		if h.policy.RegeneratesPin(cmd.Actor(), target) {
			pin, pinErr := o.MarkOutForDelivery()
			if pinErr != nil {
				return nil, pinErr
			}
			freshPin = &pin
		} else if err := o.SetMilestone(target); err != nil {
			return nil, err
		}
	case target == order.Delivered:
		if err := o.Deliver(cmd.Pin()); err != nil {
			return nil, err
		}
	case target == order.Cancelled:
		if err := o.Cancel(); err != nil {
			return nil, err
		}
	default:
		// PENDING and COMPLETED cannot be entered through this path.
		return nil, &order.InvalidTransitionError{From: o.Status(), Requested: target.String()}
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

	if freshPin != nil {
		h.dispatcher.Notify(ctx, o.RetailerID(),
			"Order Out For Delivery",
			fmt.Sprintf("Order #%s is out for delivery. Your delivery PIN is %s", o.ID(), freshPin),
			ports.NotificationCategoryOrder,
		)
	}

	return o, nil
}
