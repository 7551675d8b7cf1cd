package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkPaymentReceivedCommandIsNotConstructed = errors.New(
	"MarkPaymentReceivedCommand must be created via NewMarkPaymentReceivedCommand constructor",
)

// MarkPaymentReceivedCommand records that payment for the order was confirmed.
type MarkPaymentReceivedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPaymentReceivedCommand creates the command after validating the order id.
func NewMarkPaymentReceivedCommand(orderID kernel.UUID) (MarkPaymentReceivedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkPaymentReceivedCommand{}, err
	}

	return MarkPaymentReceivedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPaymentReceivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaymentReceivedCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c MarkPaymentReceivedCommand) OrderID() kernel.UUID {
	return c.orderID
}
