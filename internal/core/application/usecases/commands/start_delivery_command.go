package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand requests the assigned -> out_for_delivery transition: the partner picked up the order.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates the command after validating the order id.
func NewStartDeliveryCommand(orderID kernel.UUID) (StartDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c StartDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
