package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrActorNotAllowed is returned when an actor's role does not permit the
// requested lifecycle operation.
var ErrActorNotAllowed = errors.New("actor is not allowed to perform this transition")

// Role identifies the capability set of the caller acting on an order.
type Role string

const (
	RoleFarmer   Role = "FARMER"
	RoleRetailer Role = "RETAILER"
	RoleAdmin    Role = "ADMIN"
)

// RoleFromString parses a role from its wire representation.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleFarmer, RoleRetailer, RoleAdmin:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a recognized role", s))
	}
}

// Actor is the identity and role on whose behalf a lifecycle operation runs.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates an actor after validating its identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := RoleFromString(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// TransitionPolicy is the domain service deciding which roles may drive which
// order lifecycle operations. It is a pure capability check layered in front
// of the state machine; the state machine itself still enforces the
// transition guards (PIN match, settlement of delivered orders only).
//
// Capability matrix:
//   - FARMER: every fulfilment milestone, cancellation; the farmer's
//     OUT_FOR_DELIVERY keeps the existing PIN
//   - ADMIN: every milestone (its OUT_FOR_DELIVERY is the operator path,
//     which regenerates the PIN), delivery confirmation, cancellation,
//     settlement
//   - RETAILER: delivery confirmation (presenting the PIN), cancellation
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// AuthorizeTransition checks whether the actor's role may move an order into
// the target status. Returns ErrActorNotAllowed when it may not.
func (TransitionPolicy) AuthorizeTransition(actor Actor, target order.Status) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleFarmer:
		switch target {
		case order.Accepted, order.Processing, order.ReadyForPickup, order.Shipped,
			order.InTransit, order.OutForDelivery, order.Cancelled:
			return nil
		}
	case RoleRetailer:
		switch target {
		case order.Delivered, order.Cancelled:
			return nil
		}
	}

	return fmt.Errorf("%w: role %s, target status %s", ErrActorNotAllowed, actor.Role, target)
}

// AuthorizeSettlement checks whether the actor may settle an order.
// Settlement disburses the farmer's share and is an operator action.
func (TransitionPolicy) AuthorizeSettlement(actor Actor) error {
	if actor.Role != RoleAdmin {
		return fmt.Errorf("%w: role %s cannot settle orders", ErrActorNotAllowed, actor.Role)
	}
	return nil
}

// RegeneratesPin reports whether a transition into OUT_FOR_DELIVERY driven by
// this actor follows the operator path and must regenerate the delivery PIN.
func (TransitionPolicy) RegeneratesPin(actor Actor, target order.Status) bool {
	return actor.Role == RoleAdmin && target == order.OutForDelivery
}
