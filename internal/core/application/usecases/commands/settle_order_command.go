package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSettleOrderCommandIsNotConstructed = errors.New(
		"SettleOrderCommand must be created via NewSettleOrderCommand constructor",
	)
)

// SettleOrderCommand represents a request to mark a delivered order as
// financially completed, disbursing the farmer's share.
type SettleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   services.Actor

	guard guard.ConstructorGuard
}

// NewSettleOrderCommand creates a command to settle a delivered order.
func NewSettleOrderCommand(orderID kernel.UUID, actor services.Actor) (SettleOrderCommand, error) {
	cmd := SettleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SettleOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleOrderCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to settle.
func (c SettleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the identity and role requesting settlement.
func (c SettleOrderCommand) Actor() services.Actor {
	return c.actor
}

func (c *SettleOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SettleOrderCommand) setActor(actor services.Actor) error {
	validated, err := services.NewActor(actor.ID, actor.Role)
	if err != nil {
		return err
	}
	c.actor = validated
	return nil
}
