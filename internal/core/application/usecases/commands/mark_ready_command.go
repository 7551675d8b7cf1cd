package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand requests the preparing -> ready transition. Unpacked items never block the move; the handler reports the packed/total count so the override is an explicit caller decision.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReadyCommand creates the command after validating the order id.
func NewMarkReadyCommand(orderID kernel.UUID) (MarkReadyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkReadyCommand{}, err
	}

	return MarkReadyCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c MarkReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}
