package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery retrieves the current status of one order. This is the
// hottest read in the system (tracking screens poll it), so its handler
// serves from the status cache when possible.
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for a single order's status.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderStatusQuery{
		orderID: orderID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose status is requested.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusQueryIsNotConstructed if validation fails.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// GetOrderStatusQueryResponse carries the order's current lifecycle status.
type GetOrderStatusQueryResponse struct {
	OrderID kernel.UUID
	Status  string
}
