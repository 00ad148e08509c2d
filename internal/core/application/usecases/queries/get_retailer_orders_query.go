package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetRetailerOrdersQueryIsNotConstructed = errors.New(
		"GetRetailerOrdersQuery must be created via NewGetRetailerOrdersQuery constructor",
	)
)

// GetRetailerOrdersQuery retrieves the full order history of one retailer.
//
// Example:
//
//	query, err := NewGetRetailerOrdersQuery(retailerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetRetailerOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get retailer orders: %w", err)
//	}
type GetRetailerOrdersQuery struct {
	retailerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRetailerOrdersQuery creates a query scoped to a single retailer.
func NewGetRetailerOrdersQuery(retailerID kernel.UUID) (GetRetailerOrdersQuery, error) {
	if err := retailerID.Validate(); err != nil {
		return GetRetailerOrdersQuery{}, errs.NewValueIsRequiredError("retailerID")
	}

	return GetRetailerOrdersQuery{
		retailerID: retailerID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// RetailerID returns the retailer whose orders are requested.
func (q GetRetailerOrdersQuery) RetailerID() kernel.UUID {
	return q.retailerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRetailerOrdersQueryIsNotConstructed if validation fails.
func (q GetRetailerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRetailerOrdersQueryIsNotConstructed)
}

// OrderItemResponse represents a single order line in a read model.
type OrderItemResponse struct {
	ProductID       kernel.UUID
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// OrderResponse represents an order in the read model shared by the retailer
// and farmer history queries. The delivery PIN is not part of the read model:
// it is disclosed only through the placement and out-for-delivery flows.
type OrderResponse struct {
	ID              kernel.UUID
	RetailerID      kernel.UUID
	FarmerID        kernel.UUID
	Status          string
	TotalAmount     decimal.Decimal
	ShippingAddress string
	PickupAddress   string
	ContactNumber   string
	CreatedAt       time.Time
	Items           []OrderItemResponse
}
