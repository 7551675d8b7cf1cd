package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// DeclineOrderCommandHandler applies the seller's decline action, persisting the reason in the history note.
type DeclineOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeclineOrderCommandHandler creates the handler with its unit of work factory.
func NewDeclineOrderCommandHandler(uowFactory OrderUoWFactory) DeclineOrderCommandHandler {
	return DeclineOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h DeclineOrderCommandHandler) Handle(ctx context.Context, cmd DeclineOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Decline(cmd.Reason())
	})
}
