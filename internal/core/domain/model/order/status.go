package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for rejected status changes.
// Use errors.Is to classify; the concrete InvalidTransitionError carries the
// current and requested statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status change that the order lifecycle
// does not allow. The order is left unchanged when it is returned.
type InvalidTransitionError struct {
	From      Status
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of a marketplace order.
//
// Lifecycle:
//
//	PENDING ──> { ACCEPTED, PROCESSING, READY_FOR_PICKUP,
//	              SHIPPED, IN_TRANSIT, OUT_FOR_DELIVERY } ──> DELIVERED ──> COMPLETED
//	   │                        │
//	   └────────> CANCELLED <───┘   (from any non-terminal state)
//
// The intermediate milestones are informational and may be set directly in
// any order. Only two transitions carry a guard: entering OUT_FOR_DELIVERY on
// the operator path regenerates the delivery PIN, and entering DELIVERED
// requires the stored PIN to be presented. COMPLETED is reached through
// settlement of a DELIVERED order.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status assigned at placement.
	Pending

	// Accepted through OutForDelivery are informational milestones the seller
	// or operator may set directly.
	Accepted
	Processing
	ReadyForPickup
	Shipped
	InTransit
	OutForDelivery

	// Delivered marks a PIN-verified physical handover.
	Delivered

	// Cancelled aborts the order; reachable from any non-terminal state.
	Cancelled

	// Completed marks a settled order; reachable from Delivered only.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Accepted:       "ACCEPTED",
		Processing:     "PROCESSING",
		ReadyForPickup: "READY_FOR_PICKUP",
		Shipped:        "SHIPPED",
		InTransit:      "IN_TRANSIT",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Completed:      "COMPLETED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "PENDING",
		Accepted:       "ACCEPTED",
		Processing:     "PROCESSING",
		ReadyForPickup: "READY_FOR_PICKUP",
		Shipped:        "SHIPPED",
		InTransit:      "IN_TRANSIT",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Completed:      "COMPLETED",
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "READY_FOR_PICKUP"). Values outside the recognized set are rejected
// with an error unwrapping to ErrInvalidTransition.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, &InvalidTransitionError{From: Unknown, Requested: s}
}

// Validate checks if the Status value is part of the recognized set.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return &InvalidTransitionError{From: Unknown, Requested: fmt.Sprintf("%d", s)}
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsMilestone reports whether the status is one of the informational
// intermediate states that may be set directly without a guard.
func (s Status) IsMilestone() bool {
	switch s {
	case Accepted, Processing, ReadyForPickup, Shipped, InTransit, OutForDelivery:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further lifecycle transition is possible.
// Delivered is not terminal: settlement still moves it to Completed.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Completed
}
