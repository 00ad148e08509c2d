package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidPin is returned when a delivery confirmation presents a PIN
	// that does not exactly match the one stored on the order. The transition
	// fails closed: the order's status and PIN are left unchanged.
	ErrInvalidPin = errors.New("invalid delivery pin")
)

// farmerShareRate is the fraction of the total amount disbursed to the farmer
// at settlement. The remainder is the implicit platform fee.
var farmerShareRate = decimal.NewFromFloat(0.9)

// Order is the aggregate root for a marketplace purchase. It is created by
// the placement flow after stock reservation succeeded and governs the
// delivery lifecycle from PENDING to COMPLETED.
//
// Order maintains these invariants:
//   - it carries at least one line item, each with a positive quantity and an
//     immutable price-at-purchase snapshot
//   - the total amount equals the sum of the line subtotals
//   - the farmer reference is derived from the product of the first line item
//   - status only changes through the transition methods; the DELIVERED
//     transition requires the stored PIN, and a consumed PIN is never reusable
//   - instances are created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// retailerID references the buyer who placed the order
	retailerID kernel.UUID

	// farmerID references the seller, derived from the first item's product
	farmerID kernel.UUID

	// items are the order lines; non-empty, immutable after placement
	items []Item

	// totalAmount is the sum of all line subtotals
	totalAmount decimal.Decimal

	// status is the current lifecycle state
	status Status

	// deliveryPin gates the DELIVERED transition; nil once consumed
	deliveryPin *DeliveryPin

	shippingAddress string
	pickupAddress   string
	contactNumber   string

	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder/RestoreOrder
	isConstructed bool
}

// NewOrder creates a newly placed order in PENDING status with a fresh
// delivery PIN. The total amount is computed from the line items; the farmer
// must be the owner of the first item's product (the placement flow derives
// it before construction).
func NewOrder(
	id kernel.UUID,
	retailerID kernel.UUID,
	farmerID kernel.UUID,
	items []Item,
	shippingAddress string,
	contactNumber string,
) (*Order, error) {
	pin := GenerateDeliveryPin()
	o := &Order{
		status:          Pending,
		deliveryPin:     &pin,
		shippingAddress: shippingAddress,
		contactNumber:   contactNumber,
		createdAt:       time.Now().UTC(),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRetailerID(retailerID),
		o.setFarmerID(farmerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.totalAmount = totalOf(o.items)
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its stored
// status, PIN and total. Intended for repository use only.
func RestoreOrder(
	id kernel.UUID,
	retailerID kernel.UUID,
	farmerID kernel.UUID,
	items []Item,
	totalAmount decimal.Decimal,
	status Status,
	deliveryPin *DeliveryPin,
	shippingAddress string,
	pickupAddress string,
	contactNumber string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		shippingAddress: shippingAddress,
		pickupAddress:   pickupAddress,
		contactNumber:   contactNumber,
		createdAt:       createdAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRetailerID(retailerID),
		o.setFarmerID(farmerID),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if totalAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("total amount")
	}

	if deliveryPin != nil {
		if err := deliveryPin.Validate(); err != nil {
			return nil, err
		}
		pin := *deliveryPin
		o.deliveryPin = &pin
	}

	o.totalAmount = totalAmount
	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RetailerID returns the buyer's identifier.
func (o *Order) RetailerID() kernel.UUID {
	return o.retailerID
}

// FarmerID returns the seller's identifier, derived at placement from the
// product of the first line item.
func (o *Order) FarmerID() kernel.UUID {
	return o.farmerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the sum of all line subtotals.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryPin returns the stored PIN, or nil when none is set
// (the PIN is cleared once a DELIVERED transition consumes it).
func (o *Order) DeliveryPin() *DeliveryPin {
	if o.deliveryPin == nil {
		return nil
	}
	pin := *o.deliveryPin
	return &pin
}

// ShippingAddress returns the buyer-supplied delivery address.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// PickupAddress returns the optional pickup address.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// ContactNumber returns the buyer's contact number.
func (o *Order) ContactNumber() string {
	return o.contactNumber
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SetPickupAddress stores a pickup address supplied with a status update.
func (o *Order) SetPickupAddress(address string) {
	o.pickupAddress = address
}

// SetMilestone moves the order to one of the informational intermediate
// states (ACCEPTED through OUT_FOR_DELIVERY). The milestones are not strictly
// ordered between themselves, but none may be set once the order reached a
// terminal state or was delivered.
func (o *Order) SetMilestone(s Status) error {
	if !s.IsMilestone() {
		return &InvalidTransitionError{From: o.status, Requested: s.String()}
	}
	if o.status.IsTerminal() || o.status == Delivered {
		return &InvalidTransitionError{From: o.status, Requested: s.String()}
	}

	o.status = s
	return nil
}

// MarkOutForDelivery moves the order to OUT_FOR_DELIVERY on the operator
// path and regenerates the delivery PIN, overwriting any PIN assigned at
// placement time. The fresh PIN is returned so it can be communicated to the
// buyer out of band.
func (o *Order) MarkOutForDelivery() (DeliveryPin, error) {
	if err := o.SetMilestone(OutForDelivery); err != nil {
		return DeliveryPin{}, err
	}

	pin := GenerateDeliveryPin()
	o.deliveryPin = &pin
	return pin, nil
}

// Deliver confirms the physical handover. The supplied PIN must exactly
// match the stored one; on mismatch the transition is refused with
// ErrInvalidPin and the order is left unchanged. On success the status
// becomes DELIVERED and the PIN is consumed.
func (o *Order) Deliver(pin string) error {
	if o.status.IsTerminal() || o.status == Delivered {
		return &InvalidTransitionError{From: o.status, Requested: Delivered.String()}
	}

	if o.deliveryPin == nil || !o.deliveryPin.Matches(pin) {
		return ErrInvalidPin
	}

	o.status = Delivered
	o.deliveryPin = nil
	return nil
}

// Cancel aborts the order. Allowed from any non-terminal, non-delivered state.
func (o *Order) Cancel() error {
	if o.status.IsTerminal() || o.status == Delivered {
		return &InvalidTransitionError{From: o.status, Requested: Cancelled.String()}
	}

	o.status = Cancelled
	return nil
}

// Settle marks a DELIVERED order as financially COMPLETED. Settlement of an
// undelivered order is refused.
func (o *Order) Settle() error {
	if o.status != Delivered {
		return &InvalidTransitionError{From: o.status, Requested: Completed.String()}
	}

	o.status = Completed
	return nil
}

// FarmerShare returns the amount disbursed to the farmer at settlement:
// 90% of the total, the remaining 10% being the implicit platform fee.
func (o *Order) FarmerShare() decimal.Decimal {
	return o.totalAmount.Mul(farmerShareRate)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRetailerID(retailerID kernel.UUID) error {
	if err := retailerID.Validate(); err != nil {
		return err
	}
	o.retailerID = retailerID
	return nil
}

func (o *Order) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return err
	}
	o.farmerID = farmerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
