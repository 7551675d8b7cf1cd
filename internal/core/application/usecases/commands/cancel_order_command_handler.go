package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order before handoff, persisting the reason in the history note.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates the handler with its unit of work factory.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.Cancel(cmd.Reason())
	})
}
