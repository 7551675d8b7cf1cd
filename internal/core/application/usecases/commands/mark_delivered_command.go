package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand requests the out_for_delivery -> delivered transition, the successful terminal move.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates the command after validating the order id.
func NewMarkDeliveredCommand(orderID kernel.UUID) (MarkDeliveredCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}
