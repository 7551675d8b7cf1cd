package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand requests the new -> accepted transition: the seller confirms the order and item packing becomes legal.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates the command after validating the order id.
func NewAcceptOrderCommand(orderID kernel.UUID) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
