package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
//
// Placement is one atomic unit: every line item's stock check and decrement
// succeeds and the order is persisted, or nothing is. Each product row is
// fetched under a row-level exclusive lock so that concurrent placements
// against the same product serialize their check-and-decrement correctly.
//
// After a successful commit the seller is notified through the fire-and-forget
// dispatcher; a dispatch failure never fails the placement.
type PlaceOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a PlacementUoWFactory for transactional persistence and a
// NotificationDispatcher for the post-commit seller notification.
func NewPlaceOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	dispatcher ports.NotificationDispatcher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the placement command and returns the persisted order.
//
// For each line item, in caller-supplied order: the product is loaded under a
// row lock (NotFound if absent), the seller is derived from the first item's
// product, the stock is checked and decremented (InsufficientStockError if
// short) and the current price is recorded as the item's price-at-purchase.
// A single failing line aborts the whole placement: the transaction rolls
// back and no stock decrement or order becomes visible.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	// The command guarantees at least one item, so the first iteration
	// always derives the seller.
	var farmerID kernel.UUID
	items := make([]order.Item, 0, len(cmd.Items()))

	for i, requested := range cmd.Items() {
		p, err := productRepo.GetForUpdate(ctx, requested.ProductID)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			farmerID = p.FarmerID()
		}

		if err := p.Reserve(requested.Quantity); err != nil {
			return nil, err
		}

		if err := productRepo.Update(ctx, p); err != nil {
			return nil, err
		}

		item, err := order.NewItem(p.ID(), requested.Quantity, p.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	placed, err := order.NewOrder(
		cmd.OrderID(),
		cmd.RetailerID(),
		farmerID,
		items,
		cmd.ShippingAddress(),
		cmd.ContactNumber(),
	)
	if err != nil {
		return nil, err
	}

	if err := orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Notify(ctx, placed.FarmerID(),
		"New Order Received",
		fmt.Sprintf("Order #%s has been placed for %s", placed.ID(), placed.TotalAmount()),
		ports.NotificationCategoryOrder,
	)

	return placed, nil
}
