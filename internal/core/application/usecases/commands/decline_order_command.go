package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrDeclineOrderCommandIsNotConstructed = errors.New(
	"DeclineOrderCommand must be created via NewDeclineOrderCommand constructor",
)

// DeclineOrderCommand requests the new -> declined transition: the seller refuses the order.
// The reason is mandatory and ends up in the order's status history note.
type DeclineOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewDeclineOrderCommand creates the command after validating the order id and the
// presence of a reason.
func NewDeclineOrderCommand(orderID kernel.UUID, reason string) (DeclineOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeclineOrderCommand{}, err
	}
	if reason == "" {
		return DeclineOrderCommand{}, order.ErrReasonIsRequired
	}

	return DeclineOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to act on.
func (c DeclineOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the mandatory explanation for the move.
func (c DeclineOrderCommand) Reason() string {
	return c.reason
}
