package order

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrDeliveryPinIsNotConstructed indicates a DeliveryPin that was not created
// through GenerateDeliveryPin or DeliveryPinFromString.
var ErrDeliveryPinIsNotConstructed = errs.NewValueIsRequiredError(
	"DeliveryPin must be created via GenerateDeliveryPin or DeliveryPinFromString",
)

// DeliveryPin is the short numeric code the buyer presents to confirm
// physical handover. It is always exactly four ASCII digits, leading zeros
// included (e.g. "0042").
//
// DeliveryPin is an immutable value object; the zero value is invalid.
type DeliveryPin struct {
	value string
}

// GenerateDeliveryPin creates a random zero-padded 4-digit PIN from a
// cryptographic source. The PIN gates the physical handover, so it must not
// come from a predictable generator.
func GenerateDeliveryPin() DeliveryPin {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return DeliveryPin{value: fmt.Sprintf("%04d", binary.BigEndian.Uint64(b[:])%10000)}
}

// DeliveryPinFromString parses a PIN from its wire representation.
// The string must be exactly four ASCII digits.
func DeliveryPinFromString(s string) (DeliveryPin, error) {
	if len(s) != 4 {
		return DeliveryPin{}, errs.NewValueIsInvalidErrorWithCause("delivery pin",
			fmt.Errorf("%q is not exactly 4 digits", s))
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return DeliveryPin{}, errs.NewValueIsInvalidErrorWithCause("delivery pin",
				fmt.Errorf("%q contains a non-digit character", s))
		}
	}
	return DeliveryPin{value: s}, nil
}

// String returns the four-digit wire representation of the PIN.
func (p DeliveryPin) String() string {
	return p.value
}

// Matches reports whether the supplied value exactly equals the stored PIN.
func (p DeliveryPin) Matches(candidate string) bool {
	return p.value != "" && p.value == candidate
}

// Validate checks that the PIN was properly constructed.
func (p DeliveryPin) Validate() error {
	if p.value == "" {
		return ErrDeliveryPinIsNotConstructed
	}
	return nil
}
