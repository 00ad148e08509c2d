package product

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is the sentinel for stock reservation failures.
	// Use errors.Is to classify; the concrete InsufficientStockError carries
	// the product name and the requested/available quantities.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a reservation that asked for more units
// than the product currently holds.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is the catalog aggregate root. It owns the only mutable inventory
// figure in the system (stock) and the two derived rating fields.
//
// Product maintains these invariants:
//   - stock is never negative; Reserve is the only operation that decrements it
//   - price is a non-negative decimal
//   - averageRating stays within [0, 5] and, together with totalReviews, is
//     written only by the feedback aggregation flow via UpdateRating
//   - instances are created through NewProduct or RestoreProduct
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// farmerID references the farmer owning this listing
	farmerID kernel.UUID

	name        string
	description string
	category    string

	// unit is the sales unit, e.g. "KG", "Bunch", "Liter"
	unit string

	// price is the current unit price; order items snapshot it at placement
	price decimal.Decimal

	// stock is the available quantity (never negative)
	stock int

	// averageRating is the mean of all feedback ratings attached to this product
	averageRating decimal.Decimal

	// totalReviews is the count of feedback rows attached to this product
	totalReviews int

	// isConstructed ensures the product was created via NewProduct/RestoreProduct
	isConstructed bool
}

// NewProduct creates a new Product listing with zero reviews and a zero
// average rating. All business invariants are validated; the returned product
// is ready to be persisted.
func NewProduct(
	id kernel.UUID,
	farmerID kernel.UUID,
	name string,
	description string,
	category string,
	unit string,
	price decimal.Decimal,
	stock int,
) (*Product, error) {
	p := &Product{
		description:   description,
		category:      category,
		unit:          unit,
		averageRating: decimal.Zero,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setFarmerID(farmerID),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence, including the
// derived rating fields. Intended for repository use only.
func RestoreProduct(
	id kernel.UUID,
	farmerID kernel.UUID,
	name string,
	description string,
	category string,
	unit string,
	price decimal.Decimal,
	stock int,
	averageRating decimal.Decimal,
	totalReviews int,
) (*Product, error) {
	p, err := NewProduct(id, farmerID, name, description, category, unit, price, stock)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateRating(averageRating, totalReviews); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// FarmerID returns the identifier of the farmer owning this listing.
func (p *Product) FarmerID() kernel.UUID {
	return p.farmerID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the free-text product description.
func (p *Product) Description() string {
	return p.description
}

// Category returns the product category.
func (p *Product) Category() string {
	return p.category
}

// Unit returns the sales unit.
func (p *Product) Unit() string {
	return p.unit
}

// Price returns the current unit price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// Stock returns the available quantity.
func (p *Product) Stock() int {
	return p.stock
}

// AverageRating returns the mean rating across all feedback for the product.
func (p *Product) AverageRating() decimal.Decimal {
	return p.averageRating
}

// TotalReviews returns the number of feedback rows attached to the product.
func (p *Product) TotalReviews() int {
	return p.totalReviews
}

// Reserve decrements the stock by quantity for an order placement.
//
// Returns an InsufficientStockError (unwrapping to ErrInsufficientStock) when
// fewer than quantity units are available; the stock is left unchanged in that
// case. The quantity must be positive.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if p.stock < quantity {
		return &InsufficientStockError{
			ProductName: p.name,
			Requested:   quantity,
			Available:   p.stock,
		}
	}

	p.stock -= quantity
	return nil
}

// UpdateRating replaces the derived rating fields with freshly recomputed
// values. The average must lie within [0, 5] and the review count must not be
// negative; both always describe the full feedback set for this product.
func (p *Product) UpdateRating(average decimal.Decimal, totalReviews int) error {
	if average.IsNegative() || average.GreaterThan(decimal.NewFromInt(5)) {
		return errs.NewValueIsOutOfRangeError("average rating", average.String(), "0", "5")
	}

	if totalReviews < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total reviews",
			fmt.Errorf("%d is not greater than or equal to 0", totalReviews))
	}

	p.averageRating = average
	p.totalReviews = totalReviews
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return err
	}
	p.farmerID = farmerID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price.String()))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
