package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand represents a request to move an order through its
// delivery lifecycle. The new status is carried in its wire representation
// (e.g. "OUT_FOR_DELIVERY"); parsing and transition rules are enforced by the
// handler and the order aggregate.
//
// The PIN is only consulted for the DELIVERED transition; the pickup address
// is stored on the order whenever supplied.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	newStatus     string
	actor         services.Actor
	pin           string
	pickupAddress string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to transition an order.
// The pin and pickupAddress parameters are optional and may be empty.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	newStatus string,
	actor services.Actor,
	pin string,
	pickupAddress string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		pin:           pin,
		pickupAddress: pickupAddress,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setActor(actor),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested status in wire representation.
func (c UpdateOrderStatusCommand) NewStatus() string {
	return c.newStatus
}

// Actor returns the identity and role driving the transition.
func (c UpdateOrderStatusCommand) Actor() services.Actor {
	return c.actor
}

// Pin returns the PIN presented for a DELIVERED transition, or empty.
func (c UpdateOrderStatusCommand) Pin() string {
	return c.pin
}

// PickupAddress returns the optional pickup address, or empty.
func (c UpdateOrderStatusCommand) PickupAddress() string {
	return c.pickupAddress
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus string) error {
	if newStatus == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor services.Actor) error {
	validated, err := services.NewActor(actor.ID, actor.Role)
	if err != nil {
		return err
	}
	c.actor = validated
	return nil
}
