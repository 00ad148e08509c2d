package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderItem is one requested order line: a product and a positive
// quantity. The price is not supplied by the caller; it is snapshotted from
// the catalog at placement time.
type PlaceOrderItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand represents a request to place a new order against the
// catalog. The seller is not supplied: it is derived from the product of the
// first line item during placement.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(
//	    kernel.NewUUID(),
//	    retailerID,
//	    []PlaceOrderItem{{ProductID: productID, Quantity: 2}},
//	    "12 Market Road",
//	    "+91 98765 43210",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	retailerID      kernel.UUID
	items           []PlaceOrderItem
	shippingAddress string
	contactNumber   string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates that identities are valid, at least one item is requested and
// every quantity is positive.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	retailerID kernel.UUID,
	items []PlaceOrderItem,
	shippingAddress string,
	contactNumber string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		shippingAddress: shippingAddress,
		contactNumber:   contactNumber,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRetailerID(retailerID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RetailerID returns the buyer's identifier.
func (c PlaceOrderCommand) RetailerID() kernel.UUID {
	return c.retailerID
}

// Items returns the requested order lines in caller-supplied order.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	items := make([]PlaceOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

// ShippingAddress returns the free-text delivery address.
func (c PlaceOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// ContactNumber returns the buyer's contact number.
func (c PlaceOrderCommand) ContactNumber() string {
	return c.contactNumber
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setRetailerID(retailerID kernel.UUID) error {
	if err := retailerID.Validate(); err != nil {
		return err
	}
	c.retailerID = retailerID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
	}

	c.items = make([]PlaceOrderItem, len(items))
	copy(c.items, items)
	return nil
}
