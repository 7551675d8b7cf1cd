package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPreparingCommandIsNotConstructed = errors.New(
	"StartPreparingCommand must be created via NewStartPreparingCommand constructor",
)

// StartPreparingCommand requests the accepted -> preparing transition: the seller starts packing items.
type StartPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparingCommand creates the command after validating the order id.
func NewStartPreparingCommand(orderID kernel.UUID) (StartPreparingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartPreparingCommand{}, err
	}

	return StartPreparingCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparingCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c StartPreparingCommand) OrderID() kernel.UUID {
	return c.orderID
}
