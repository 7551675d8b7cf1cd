package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand binds a ready order to a chosen delivery partner.
// The caller picks the partner from a registry snapshot; the reservation
// itself is decided atomically by the handler, so a stale snapshot results
// in partner.ErrPartnerUnavailable rather than a double booking.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates the command after validating both ids.
func NewAssignDeliveryCommand(orderID, partnerID kernel.UUID) (AssignDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the identifier of the chosen partner.
func (c AssignDeliveryCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
