package partner

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for delivery partner operations.
var (
	// ErrPartnerIsNotConstructed is returned when a DeliveryPartner bypassed
	// its constructors.
	ErrPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner")

	// ErrPartnerUnavailable is returned by Reserve when the partner already
	// holds an active order or is off shift.
	ErrPartnerUnavailable = errors.New("delivery partner is unavailable")

	// ErrPartnerHasActiveOrder is returned when toggling a partner available
	// while they still hold an active order.
	ErrPartnerHasActiveOrder = errors.New("delivery partner still holds an active order")
)

// DeliveryPartner is an external agent capable of fulfilling at most one
// active delivery at a time.
//
// Invariant: activeOrderID is set only while isAvailable is false. A partner
// may additionally be unavailable without an active order (off shift).
type DeliveryPartner struct {
	// id uniquely identifies the partner
	id kernel.UUID
	// name is the partner's display name
	name string
	// phoneNumber is the partner's contact phone
	phoneNumber string
	// isAvailable reports whether the partner can take a new order
	isAvailable bool
	// activeOrderID references the order currently bound to the partner
	activeOrderID *kernel.UUID
	// guard ensures the partner was created via a constructor
	guard guard.ConstructorGuard
}

// NewDeliveryPartner registers a partner. New partners start available with
// no active order.
func NewDeliveryPartner(id kernel.UUID, name, phoneNumber string) (*DeliveryPartner, error) {
	p := &DeliveryPartner{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPhoneNumber(phoneNumber),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreDeliveryPartner reconstructs a partner from persistence, including
// availability and the active order reference. It rejects rows where an
// active order coexists with availability, so corrupt data cannot produce an
// aggregate that violates the single-active-order invariant.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name string,
	phoneNumber string,
	isAvailable bool,
	activeOrderID *kernel.UUID,
) (*DeliveryPartner, error) {
	p := &DeliveryPartner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPhoneNumber(phoneNumber),
	); err != nil {
		return nil, err
	}

	if activeOrderID != nil {
		if err := activeOrderID.Validate(); err != nil {
			return nil, err
		}
		if isAvailable {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"availability",
				errors.New("partner with an active order cannot be available"),
			)
		}
		orderID := *activeOrderID
		p.activeOrderID = &orderID
	}

	p.isAvailable = isAvailable
	return p, nil
}

// Validate ensures the partner was created through a constructor.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by their unique identifiers.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// PhoneNumber returns the partner's contact phone.
func (p *DeliveryPartner) PhoneNumber() string {
	return p.phoneNumber
}

// IsAvailable reports whether the partner can take a new order.
func (p *DeliveryPartner) IsAvailable() bool {
	return p.isAvailable
}

// ActiveOrderID returns the order currently bound to the partner, or nil.
func (p *DeliveryPartner) ActiveOrderID() *kernel.UUID {
	if p.activeOrderID == nil {
		return nil
	}
	orderID := *p.activeOrderID
	return &orderID
}

// Reserve binds the partner to an order. Fails with ErrPartnerUnavailable
// when the partner already holds an active order or is off shift; exactly
// one of several competing reservations can succeed.
func (p *DeliveryPartner) Reserve(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if !p.isAvailable || p.activeOrderID != nil {
		return ErrPartnerUnavailable
	}

	p.activeOrderID = &orderID
	p.isAvailable = false
	return nil
}

// Release frees the partner from their active order and makes them available
// again. Releasing an unreserved partner is a no-op, which keeps the
// coordinator's compensating release idempotent.
func (p *DeliveryPartner) Release() {
	p.activeOrderID = nil
	p.isAvailable = true
}

// SetAvailability applies a partner-initiated availability toggle. Going off
// shift is always allowed; coming back on shift is refused while the partner
// still holds an active order.
func (p *DeliveryPartner) SetAvailability(available bool) error {
	if available && p.activeOrderID != nil {
		return ErrPartnerHasActiveOrder
	}
	p.isAvailable = available
	return nil
}

func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *DeliveryPartner) setPhoneNumber(phoneNumber string) error {
	if phoneNumber == "" {
		return errs.NewValueIsRequiredError("phone number")
	}
	p.phoneNumber = phoneNumber
	return nil
}
