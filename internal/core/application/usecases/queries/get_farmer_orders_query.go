package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetFarmerOrdersQueryIsNotConstructed = errors.New(
		"GetFarmerOrdersQuery must be created via NewGetFarmerOrdersQuery constructor",
	)
)

// GetFarmerOrdersQuery retrieves every order directed at one farmer,
// across all statuses. Farmers use this view to work their fulfillment
// backlog.
type GetFarmerOrdersQuery struct {
	farmerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetFarmerOrdersQuery creates a query scoped to a single farmer.
func NewGetFarmerOrdersQuery(farmerID kernel.UUID) (GetFarmerOrdersQuery, error) {
	if err := farmerID.Validate(); err != nil {
		return GetFarmerOrdersQuery{}, errs.NewValueIsRequiredError("farmerID")
	}

	return GetFarmerOrdersQuery{
		farmerID: farmerID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// FarmerID returns the farmer whose orders are requested.
func (q GetFarmerOrdersQuery) FarmerID() kernel.UUID {
	return q.farmerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFarmerOrdersQueryIsNotConstructed if validation fails.
func (q GetFarmerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetFarmerOrdersQueryIsNotConstructed)
}
