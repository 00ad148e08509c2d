// Package feedback provides the feedback entity: a single buyer review
// attached to exactly one order. Submitting feedback again for the same order
// revises the existing row instead of creating a second one; the product's
// derived rating fields are recomputed from the full feedback set afterwards.
package feedback

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrFeedbackIsNotConstructed is returned when a Feedback instance was not
// created through the NewFeedback factory method.
var ErrFeedbackIsNotConstructed = errors.New("Feedback must be created via NewFeedback constructor")

const (
	// MinRating and MaxRating bound the integer star rating.
	MinRating = 1
	MaxRating = 5
)

// Feedback is a buyer review for a completed order. At most one feedback row
// exists per order; re-reviews update the rating and comment in place.
type Feedback struct {
	// id is the unique identifier for the feedback row
	id kernel.UUID

	// orderID references the reviewed order (one feedback per order)
	orderID kernel.UUID

	// productID references the reviewed product
	productID kernel.UUID

	// retailerID references the reviewing buyer
	retailerID kernel.UUID

	// rating is the integer star rating in [MinRating, MaxRating]
	rating int

	comment   string
	createdAt time.Time

	// isConstructed ensures the feedback was created via NewFeedback
	isConstructed bool
}

// NewFeedback creates a new feedback row linking an order, a product and the
// reviewing retailer. The rating must lie within [MinRating, MaxRating].
func NewFeedback(
	id kernel.UUID,
	orderID kernel.UUID,
	productID kernel.UUID,
	retailerID kernel.UUID,
	rating int,
	comment string,
) (*Feedback, error) {
	f := &Feedback{
		comment:       comment,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		f.setID(id),
		f.setOrderID(orderID),
		f.setProductID(productID),
		f.setRetailerID(retailerID),
		f.setRating(rating),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// RestoreFeedback reconstructs a Feedback row from persistence.
// Intended for repository use only.
func RestoreFeedback(
	id kernel.UUID,
	orderID kernel.UUID,
	productID kernel.UUID,
	retailerID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Feedback, error) {
	f, err := NewFeedback(id, orderID, productID, retailerID, rating, comment)
	if err != nil {
		return nil, err
	}

	f.createdAt = createdAt
	return f, nil
}

// Validate ensures the Feedback instance was properly constructed.
func (f *Feedback) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFeedbackIsNotConstructed
	}
	return nil
}

// ID returns the feedback row's unique identifier.
func (f *Feedback) ID() kernel.UUID {
	return f.id
}

// OrderID returns the reviewed order's identifier.
func (f *Feedback) OrderID() kernel.UUID {
	return f.orderID
}

// ProductID returns the reviewed product's identifier.
func (f *Feedback) ProductID() kernel.UUID {
	return f.productID
}

// RetailerID returns the reviewing buyer's identifier.
func (f *Feedback) RetailerID() kernel.UUID {
	return f.retailerID
}

// Rating returns the integer star rating.
func (f *Feedback) Rating() int {
	return f.rating
}

// Comment returns the free-text review comment.
func (f *Feedback) Comment() string {
	return f.comment
}

// CreatedAt returns the submission timestamp.
func (f *Feedback) CreatedAt() time.Time {
	return f.createdAt
}

// Revise updates the rating and comment in place for an idempotent
// re-review of the same order.
func (f *Feedback) Revise(rating int, comment string) error {
	if err := f.setRating(rating); err != nil {
		return err
	}
	f.comment = comment
	return nil
}

func (f *Feedback) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Feedback) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	f.orderID = orderID
	return nil
}

func (f *Feedback) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	f.productID = productID
	return nil
}

func (f *Feedback) setRetailerID(retailerID kernel.UUID) error {
	if err := retailerID.Validate(); err != nil {
		return err
	}
	f.retailerID = retailerID
	return nil
}

func (f *Feedback) setRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	f.rating = rating
	return nil
}
