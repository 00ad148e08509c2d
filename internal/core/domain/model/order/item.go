package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory function.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line: a product reference, a positive quantity and
// the unit price snapshotted at placement time. The snapshot protects
// historical orders from later price changes and is immutable once taken.
type Item struct {
	productID       kernel.UUID
	quantity        int
	priceAtPurchase decimal.Decimal

	isConstructed bool
}

// NewItem creates an order line with a placement-time price snapshot.
// The quantity must be positive and the price non-negative.
func NewItem(productID kernel.UUID, quantity int, priceAtPurchase decimal.Decimal) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPriceAtPurchase(priceAtPurchase),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was properly constructed via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// PriceAtPurchase returns the unit price snapshot taken at placement time.
func (i Item) PriceAtPurchase() decimal.Decimal {
	return i.priceAtPurchase
}

// Subtotal returns quantity times the price-at-purchase snapshot.
func (i Item) Subtotal() decimal.Decimal {
	return i.priceAtPurchase.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPriceAtPurchase(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price at purchase",
			fmt.Errorf("%s is negative", price.String()))
	}
	i.priceAtPurchase = price
	return nil
}
