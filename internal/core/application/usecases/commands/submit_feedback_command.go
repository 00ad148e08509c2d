package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
		"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
	)
)

// SubmitFeedbackCommand represents a buyer review for an order. Submitting
// feedback a second time for the same order revises the existing row.
// The rating range is enforced by the feedback entity, not the command.
type SubmitFeedbackCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	productID  kernel.UUID
	retailerID kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

// NewSubmitFeedbackCommand creates a command to submit or revise feedback.
func NewSubmitFeedbackCommand(
	orderID kernel.UUID,
	productID kernel.UUID,
	retailerID kernel.UUID,
	rating int,
	comment string,
) (SubmitFeedbackCommand, error) {
	cmd := SubmitFeedbackCommand{
		rating:  rating,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setRetailerID(retailerID),
	); err != nil {
		return SubmitFeedbackCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

// OrderID returns the reviewed order's identifier.
func (c SubmitFeedbackCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the reviewed product's identifier.
func (c SubmitFeedbackCommand) ProductID() kernel.UUID {
	return c.productID
}

// RetailerID returns the reviewing buyer's identifier.
func (c SubmitFeedbackCommand) RetailerID() kernel.UUID {
	return c.retailerID
}

// Rating returns the submitted star rating.
func (c SubmitFeedbackCommand) Rating() int {
	return c.rating
}

// Comment returns the free-text review comment.
func (c SubmitFeedbackCommand) Comment() string {
	return c.comment
}

func (c *SubmitFeedbackCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitFeedbackCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *SubmitFeedbackCommand) setRetailerID(retailerID kernel.UUID) error {
	if err := retailerID.Validate(); err != nil {
		return err
	}
	c.retailerID = retailerID
	return nil
}
