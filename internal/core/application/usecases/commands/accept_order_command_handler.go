package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler applies the seller's accept action to an order in status new.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAcceptOrderCommandHandler creates the handler with its unit of work factory.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Accept()
	})
}
